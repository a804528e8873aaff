package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/goliatone/go-propdoc"
	"github.com/goliatone/go-propdoc/pkg/metadata"
	"github.com/goliatone/go-propdoc/pkg/orchestrator"
	"github.com/goliatone/go-propdoc/pkg/render"
)

const snapshotRendererName = "metadata-snapshot"

// snapshotRenderer serialises the sorted metadata instead of rendering a
// template. The output pins the model the Markdown templates receive.
type snapshotRenderer struct{}

func (r *snapshotRenderer) Name() string {
	return snapshotRendererName
}

func (r *snapshotRenderer) ContentType() string {
	return "application/json"
}

func (r *snapshotRenderer) Render(_ context.Context, md metadata.Metadata, _ render.RenderOptions) (string, error) {
	payload, err := json.MarshalIndent(md, "", "  ")
	if err != nil {
		return "", err
	}
	return string(payload) + "\n", nil
}

func main() {
	var (
		metadataPath = flag.String("metadata", "examples/fixtures/spring-configuration-metadata.json", "metadata JSON file")
		outputPath   = flag.String("output", "pkg/renderers/markdown/testdata/metadata_snapshot.json", "output path for the sorted metadata snapshot")
	)
	flag.Parse()

	registry := render.NewRegistry()
	registry.MustRegister(&snapshotRenderer{})

	generator := propdoc.NewOrchestrator(
		orchestrator.WithRegistry(registry),
		orchestrator.WithDefaultRenderer(snapshotRendererName),
	)

	result, err := generator.Generate(context.Background(), orchestrator.Request{
		MetadataFile:  *metadataPath,
		OutputFile:    *outputPath,
		FailIfMissing: true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "generate snapshot: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("wrote %s (%d properties)\n", result.OutputFile, result.Properties)
}
