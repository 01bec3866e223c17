package http

import (
	"fmt"

	"github.com/shapestone/shape-core/pkg/ast"
)

var zeroPos = ast.Position{}

// MediaTypeToNode converts a MediaType to an AST ObjectNode.
func MediaTypeToNode(mt MediaType) ast.SchemaNode {
	return ast.NewObjectNode(map[string]ast.SchemaNode{
		"type":    ast.NewLiteralNode(mt.typ, zeroPos),
		"subtype": ast.NewLiteralNode(mt.sub, zeroPos),
		"params":  paramsToNode(mt.params),
		"text":    ast.NewLiteralNode(mt.String(), zeroPos),
	}, zeroPos)
}

// NodeToMediaType converts an AST ObjectNode produced by MediaTypeToNode
// back to a MediaType, validating it like NewMediaType.
func NodeToMediaType(node ast.SchemaNode) (MediaType, error) {
	obj, ok := node.(*ast.ObjectNode)
	if !ok {
		return MediaType{}, fmt.Errorf("expected ObjectNode for media type, got %T", node)
	}
	props := obj.Properties()
	var params []Param
	if v, ok := props["params"]; ok {
		pairs, err := nodeToPairs(v, "name")
		if err != nil {
			return MediaType{}, err
		}
		for _, p := range pairs {
			params = append(params, Param{Name: p[0], Value: p[1]})
		}
	}
	return NewMediaType(stringProp(props, "type"), stringProp(props, "subtype"), params...)
}

// AcceptToNode converts an Accept list to an AST ArrayDataNode.
func AcceptToNode(a Accept) ast.SchemaNode {
	elements := make([]ast.SchemaNode, len(a))
	for i, p := range a {
		elements[i] = ast.NewObjectNode(map[string]ast.SchemaNode{
			"mediaType": MediaTypeToNode(p.MediaType),
			"q":         ast.NewLiteralNode(p.Quality.Float(), zeroPos),
		}, zeroPos)
	}
	return ast.NewArrayDataNode(elements, zeroPos)
}

// URIToNode converts a URI to an AST ObjectNode keyed by its form.
func URIToNode(u URI) ast.SchemaNode {
	props := map[string]ast.SchemaNode{
		"form": ast.NewLiteralNode(u.Form().String(), zeroPos),
		"text": ast.NewLiteralNode(u.String(), zeroPos),
	}
	switch u := u.(type) {
	case Origin:
		addOrigin(props, u)
	case Absolute:
		props["scheme"] = ast.NewLiteralNode(u.Scheme(), zeroPos)
		props["authority"] = authorityToNode(u.Authority())
		addOrigin(props, u.origin)
	case Authority:
		props["authority"] = authorityToNode(u)
	}
	return ast.NewObjectNode(props, zeroPos)
}

func addOrigin(props map[string]ast.SchemaNode, o Origin) {
	segs := o.path.Segments()
	elements := make([]ast.SchemaNode, len(segs))
	for i, s := range segs {
		elements[i] = ast.NewLiteralNode(s, zeroPos)
	}
	props["segments"] = ast.NewArrayDataNode(elements, zeroPos)
	props["endsInSlash"] = ast.NewLiteralNode(o.path.EndsInSlash(), zeroPos)
	if o.query.IsSet() {
		var pairs []ast.SchemaNode
		for k, v := range o.query.Pairs() {
			pairs = append(pairs, ast.NewObjectNode(map[string]ast.SchemaNode{
				"key":   ast.NewLiteralNode(k, zeroPos),
				"value": ast.NewLiteralNode(v, zeroPos),
			}, zeroPos))
		}
		props["query"] = ast.NewArrayDataNode(pairs, zeroPos)
	}
	if f, ok := o.Fragment(); ok {
		props["fragment"] = ast.NewLiteralNode(f, zeroPos)
	}
}

func authorityToNode(a Authority) ast.SchemaNode {
	props := map[string]ast.SchemaNode{
		"host":     ast.NewLiteralNode(a.host, zeroPos),
		"hostKind": ast.NewLiteralNode(a.kind.String(), zeroPos),
	}
	if port, ok := a.Port(); ok {
		props["port"] = ast.NewLiteralNode(int64(port), zeroPos)
	}
	if ui, ok := a.UserInfo(); ok {
		props["userinfo"] = ast.NewLiteralNode(ui, zeroPos)
	}
	return ast.NewObjectNode(props, zeroPos)
}

// HeadersToNode converts Headers to an AST ArrayDataNode of key/value objects.
func HeadersToNode(headers Headers) ast.SchemaNode {
	elements := make([]ast.SchemaNode, len(headers))
	for i, h := range headers {
		elements[i] = ast.NewObjectNode(map[string]ast.SchemaNode{
			"key":   ast.NewLiteralNode(h.Key, zeroPos),
			"value": ast.NewLiteralNode(h.Value, zeroPos),
		}, zeroPos)
	}
	return ast.NewArrayDataNode(elements, zeroPos)
}

// NodeToHeaders converts an AST headers array back to Headers.
func NodeToHeaders(node ast.SchemaNode) (Headers, error) {
	pairs, err := nodeToPairs(node, "key")
	if err != nil {
		return nil, err
	}
	headers := make(Headers, 0, len(pairs))
	for _, p := range pairs {
		headers.Add(p[0], p[1])
	}
	return headers, nil
}

// NodeToInterface converts an AST node to native Go types.
func NodeToInterface(node ast.SchemaNode) interface{} {
	switch n := node.(type) {
	case *ast.LiteralNode:
		return n.Value()
	case *ast.ArrayDataNode:
		elements := n.Elements()
		arr := make([]interface{}, len(elements))
		for i, elem := range elements {
			arr[i] = NodeToInterface(elem)
		}
		return arr
	case *ast.ObjectNode:
		props := n.Properties()
		m := make(map[string]interface{}, len(props))
		for k, v := range props {
			m[k] = NodeToInterface(v)
		}
		return m
	default:
		return nil
	}
}

func paramsToNode(params []Param) ast.SchemaNode {
	elements := make([]ast.SchemaNode, len(params))
	for i, p := range params {
		elements[i] = ast.NewObjectNode(map[string]ast.SchemaNode{
			"name":  ast.NewLiteralNode(p.Name, zeroPos),
			"value": ast.NewLiteralNode(p.Value, zeroPos),
		}, zeroPos)
	}
	return ast.NewArrayDataNode(elements, zeroPos)
}

// nodeToPairs reads an array of {keyName, "value"} objects.
func nodeToPairs(node ast.SchemaNode, keyName string) ([][2]string, error) {
	arr, ok := node.(*ast.ArrayDataNode)
	if !ok {
		return nil, fmt.Errorf("expected ArrayDataNode, got %T", node)
	}
	elements := arr.Elements()
	pairs := make([][2]string, 0, len(elements))
	for _, elem := range elements {
		obj, ok := elem.(*ast.ObjectNode)
		if !ok {
			continue
		}
		props := obj.Properties()
		pairs = append(pairs, [2]string{stringProp(props, keyName), stringProp(props, "value")})
	}
	return pairs, nil
}

func stringProp(props map[string]ast.SchemaNode, name string) string {
	if v, ok := props[name]; ok {
		if lit, ok := v.(*ast.LiteralNode); ok {
			s, _ := lit.Value().(string)
			return s
		}
	}
	return ""
}
