package pongo

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
)

// checkReferences walks the tags and variables of a pongo2 template and
// fails on the first variable path that does not resolve against data.
// pongo2 itself renders unknown names and missing fields as empty strings.
// Loop variables are bound to the elements they iterate when the loop source
// is a plain path; anything the checker cannot follow is accepted. Included
// and extended templates are not followed.
func checkReferences(source string, data map[string]any) error {
	c := &refChecker{data: data}
	rest := source
	for {
		start := strings.Index(rest, "{")
		if start < 0 || start+1 >= len(rest) {
			return nil
		}
		var closing string
		switch rest[start+1] {
		case '{':
			closing = "}}"
		case '%':
			closing = "%}"
		case '#':
			closing = "#}"
		default:
			rest = rest[start+1:]
			continue
		}
		body, after, ok := cutTag(rest[start+2:], closing)
		if !ok {
			return nil
		}
		rest = after

		switch closing {
		case "}}":
			if err := c.checkExpr(body); err != nil {
				return err
			}
		case "%}":
			name, args := splitTag(body)
			if name == "comment" || name == "verbatim" {
				rest = skipBlock(rest, "end"+name)
				continue
			}
			if err := c.tag(name, args); err != nil {
				return err
			}
		}
	}
}

// cutTag returns the tag body up to closing, ignoring closers inside quoted
// strings, and the remaining source.
func cutTag(s, closing string) (string, string, bool) {
	var quote byte
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case quote != 0:
			if ch == '\\' {
				i++
			} else if ch == quote {
				quote = 0
			}
		case ch == '"' || ch == '\'':
			quote = ch
		case strings.HasPrefix(s[i:], closing):
			return trimMarkers(s[:i]), s[i+len(closing):], true
		}
	}
	return "", "", false
}

func trimMarkers(body string) string {
	body = strings.TrimPrefix(body, "-")
	body = strings.TrimSuffix(body, "-")
	return strings.TrimSpace(body)
}

func splitTag(body string) (string, string) {
	name, args, _ := strings.Cut(body, " ")
	return name, strings.TrimSpace(args)
}

// skipBlock drops everything up to and including the {% end %} tag.
func skipBlock(s, end string) string {
	for {
		start := strings.Index(s, "{%")
		if start < 0 {
			return ""
		}
		body, after, ok := cutTag(s[start+2:], "%}")
		if !ok {
			return ""
		}
		s = after
		if name, _ := splitTag(body); name == end {
			return s
		}
	}
}

// binding is what a name refers to inside a template: the sample values it
// can take, or nothing the checker can follow.
type binding struct {
	values []any
	opaque bool
}

var opaqueBinding = binding{opaque: true}

type refChecker struct {
	data   map[string]any
	scopes []map[string]binding
}

func (c *refChecker) tag(name, args string) error {
	switch name {
	case "if", "elif", "ifequal", "ifnotequal":
		return c.checkExpr(args)
	case "for":
		return c.enterFor(args)
	case "with":
		return c.enterWith(args)
	case "macro":
		c.enterMacro(args)
	case "set":
		return c.set(args)
	case "endfor", "endwith", "endmacro":
		c.pop()
	}
	return nil
}

var forPattern = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)(?:\s*,\s*([A-Za-z_][A-Za-z0-9_]*))?\s+in\s+(.+?)(?:\s+reversed)?(?:\s+sorted)?$`)

func (c *refChecker) enterFor(args string) error {
	m := forPattern.FindStringSubmatch(args)
	if m == nil {
		c.push(map[string]binding{"forloop": opaqueBinding})
		return nil
	}
	key, value, expr := m[1], m[2], m[3]
	if err := c.checkExpr(expr); err != nil {
		return err
	}

	scope := map[string]binding{"forloop": opaqueBinding, key: opaqueBinding}
	if value != "" {
		scope[value] = opaqueBinding
	}
	if source, ok := c.bindingFor(expr); ok {
		keys, values := iterate(source.values)
		scope[key] = binding{values: keys}
		if value != "" {
			scope[value] = values
		}
	}
	c.push(scope)
	return nil
}

// iterate mirrors pongo2 loop binding: a list yields its elements as the
// first variable, a map yields keys then values, a string its characters.
func iterate(sources []any) ([]any, binding) {
	var keys, values []any
	second := binding{}
	for _, source := range sources {
		switch v := source.(type) {
		case []any:
			keys = append(keys, v...)
			second = opaqueBinding
		case map[string]any:
			for k, item := range v {
				keys = append(keys, k)
				values = append(values, item)
			}
		case string:
			for _, r := range v {
				keys = append(keys, string(r))
			}
		}
	}
	if second.opaque {
		return keys, second
	}
	return keys, binding{values: values}
}

var withPattern = regexp.MustCompile(`([A-Za-z_][A-Za-z0-9_]*)\s*=\s*`)

func (c *refChecker) enterWith(args string) error {
	scope := map[string]binding{}
	if expr, name, ok := strings.Cut(args, " as "); ok {
		if err := c.checkExpr(expr); err != nil {
			return err
		}
		scope[strings.TrimSpace(name)] = c.bindingOrOpaque(expr)
		c.push(scope)
		return nil
	}

	matches := withPattern.FindAllStringSubmatchIndex(args, -1)
	for i, m := range matches {
		end := len(args)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		expr := strings.TrimSpace(args[m[1]:end])
		if err := c.checkExpr(expr); err != nil {
			return err
		}
		scope[args[m[2]:m[3]]] = c.bindingOrOpaque(expr)
	}
	c.push(scope)
	return nil
}

func (c *refChecker) enterMacro(args string) {
	name, params, _ := strings.Cut(args, "(")
	if name = strings.TrimSpace(name); name != "" {
		c.bind(name, opaqueBinding)
	}
	params, _, _ = strings.Cut(params, ")")

	scope := map[string]binding{}
	for _, param := range strings.Split(params, ",") {
		param, _, _ = strings.Cut(param, "=")
		if param = strings.TrimSpace(param); param != "" {
			scope[param] = opaqueBinding
		}
	}
	c.push(scope)
}

func (c *refChecker) set(args string) error {
	name, expr, ok := strings.Cut(args, "=")
	if !ok {
		return nil
	}
	if err := c.checkExpr(expr); err != nil {
		return err
	}
	c.bind(strings.TrimSpace(name), c.bindingOrOpaque(expr))
	return nil
}

func (c *refChecker) push(scope map[string]binding) {
	c.scopes = append(c.scopes, scope)
}

func (c *refChecker) pop() {
	if len(c.scopes) > 0 {
		c.scopes = c.scopes[:len(c.scopes)-1]
	}
}

func (c *refChecker) bind(name string, b binding) {
	if len(c.scopes) == 0 {
		c.push(map[string]binding{})
	}
	c.scopes[len(c.scopes)-1][name] = b
}

func (c *refChecker) lookup(name string) (binding, bool) {
	for i := len(c.scopes) - 1; i >= 0; i-- {
		if b, ok := c.scopes[i][name]; ok {
			return b, true
		}
	}
	if v, ok := c.data[name]; ok {
		return binding{values: []any{v}}, true
	}
	return binding{}, false
}

var pathPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z0-9_]+)*$`)

// bindingFor resolves expr when it is a plain dotted path.
func (c *refChecker) bindingFor(expr string) (binding, bool) {
	expr = strings.TrimSpace(expr)
	if !pathPattern.MatchString(expr) {
		return binding{}, false
	}
	path := strings.Split(expr, ".")
	root, ok := c.lookup(path[0])
	if !ok || root.opaque {
		return binding{}, false
	}
	values, err := resolve(root.values, path[1:], expr)
	if err != nil {
		return binding{}, false
	}
	return binding{values: values}, true
}

func (c *refChecker) bindingOrOpaque(expr string) binding {
	if b, ok := c.bindingFor(expr); ok {
		return b
	}
	return opaqueBinding
}

func (c *refChecker) checkExpr(expr string) error {
	for _, ref := range references(expr) {
		full := strings.Join(ref.path, ".")
		root, ok := c.lookup(ref.path[0])
		if !ok {
			return fmt.Errorf("undefined variable %q", full)
		}
		if root.opaque {
			continue
		}
		segments := ref.path[1:]
		if ref.call && len(segments) > 0 {
			segments = segments[:len(segments)-1]
		}
		if _, err := resolve(root.values, segments, full); err != nil {
			return err
		}
	}
	return nil
}

// resolve follows segments through every sample value. A list index past the
// end drops the sample; a missing map key fails.
func resolve(values []any, segments []string, full string) ([]any, error) {
	for _, segment := range segments {
		next := make([]any, 0, len(values))
		for _, value := range values {
			switch v := value.(type) {
			case map[string]any:
				item, ok := v[segment]
				if !ok {
					return nil, fmt.Errorf("undefined variable %q: no key %q", full, segment)
				}
				next = append(next, item)
			case []any:
				idx, err := strconv.Atoi(segment)
				if err != nil {
					return nil, fmt.Errorf("variable %q: cannot look up %q on a list", full, segment)
				}
				if idx >= 0 && idx < len(v) {
					next = append(next, v[idx])
				}
			case nil:
				return nil, fmt.Errorf("variable %q: cannot look up %q on a null value", full, segment)
			case string:
				if _, err := strconv.Atoi(segment); err != nil {
					return nil, fmt.Errorf("variable %q: cannot look up %q on a string", full, segment)
				}
			default:
				if reflect.ValueOf(v).Kind() == reflect.Func {
					continue
				}
				return nil, fmt.Errorf("variable %q: cannot look up %q on %T", full, segment, v)
			}
		}
		values = next
	}
	return values, nil
}

type reference struct {
	path []string
	call bool
}

var keywords = map[string]bool{
	"and": true, "or": true, "not": true, "in": true, "is": true,
	"as": true, "export": true,
	"true": true, "false": true, "True": true, "False": true,
	"none": true, "None": true, "nil": true,
}

// references lists the variable paths in a pongo2 expression. Literals,
// keywords and filter names are skipped; filter arguments are not.
func references(expr string) []reference {
	var refs []reference
	var prev byte
	for i := 0; i < len(expr); {
		ch := expr[i]
		switch {
		case ch == '"' || ch == '\'':
			i = skipString(expr, i)
			prev = ch
		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r':
			i++
		case isDigit(ch):
			for i < len(expr) && (isDigit(expr[i]) || expr[i] == '.') {
				i++
			}
			prev = '0'
		case isIdentStart(ch):
			j := identEnd(expr, i)
			path := []string{expr[i:j]}
			for j+1 < len(expr) && expr[j] == '.' && isIdentPart(expr[j+1]) {
				k := identEnd(expr, j+1)
				path = append(path, expr[j+1:k])
				j = k
			}
			switch {
			case prev == '|' || prev == '.':
			case len(path) == 1 && keywords[path[0]]:
			default:
				refs = append(refs, reference{path: path, call: j < len(expr) && expr[j] == '('})
			}
			prev = 'a'
			i = j
		default:
			prev = ch
			i++
		}
	}
	return refs
}

func skipString(expr string, i int) int {
	quote := expr[i]
	for i++; i < len(expr); i++ {
		switch expr[i] {
		case '\\':
			i++
		case quote:
			return i + 1
		}
	}
	return i
}

func identEnd(expr string, i int) int {
	for i < len(expr) && isIdentPart(expr[i]) {
		i++
	}
	return i
}

func isDigit(ch byte) bool { return ch >= '0' && ch <= '9' }

func isIdentStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentPart(ch byte) bool { return isIdentStart(ch) || isDigit(ch) }
