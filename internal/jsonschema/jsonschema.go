package jsonschema

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Schema is the subset of JSON Schema accepted by OpenAI structured outputs
// in strict mode. Objects always close additional properties and list every
// property as required.
type Schema struct {
	Type        string   `json:"type,omitempty"`
	Description string   `json:"description,omitempty"`
	Required    []string `json:"required,omitempty"`
	// Properties of an object, each with its own schema
	Properties map[string]*Schema `json:"properties,omitempty"`
	// Items is the element schema of an array
	Items *Schema `json:"items,omitempty"`
	// AdditionalProperties is false on every generated object
	AdditionalProperties any   `json:"additionalProperties,omitempty"`
	Enum                 []any `json:"enum,omitempty"`
	// Ref points into Defs for recursive types
	Ref  string             `json:"$ref,omitempty"`
	Defs map[string]*Schema `json:"$defs,omitempty"`
}

// GenerateJSONSchema derives a strict schema from the Go type T.
//
// Struct fields are named after their json tag, fields tagged `json:"-"` and
// unexported fields are skipped. Pointers collapse to their element type.
// Maps, interfaces, channels and functions cannot be expressed in strict mode
// and produce an error.
func GenerateJSONSchema[T any]() (*Schema, error) {
	ctx := &schemaContext{
		visited: make(map[reflect.Type]string),
		defs:    make(map[string]*Schema),
	}

	schema, err := ctx.generate(reflect.TypeOf((*T)(nil)).Elem(), true)
	if err != nil {
		return nil, err
	}

	if len(ctx.defs) > 0 {
		schema.Defs = ctx.defs
	}
	return schema, nil
}

// schemaContext tracks struct types already emitted so recursive types
// become $ref entries instead of looping forever.
type schemaContext struct {
	visited map[reflect.Type]string
	defs    map[string]*Schema
}

func (ctx *schemaContext) generate(t reflect.Type, isRoot bool) (*Schema, error) {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	switch t.Kind() {
	case reflect.String:
		return &Schema{Type: "string"}, nil
	case reflect.Bool:
		return &Schema{Type: "boolean"}, nil
	case reflect.Float32, reflect.Float64:
		return &Schema{Type: "number"}, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return &Schema{Type: "integer"}, nil
	case reflect.Slice, reflect.Array:
		items, err := ctx.generate(t.Elem(), false)
		if err != nil {
			return nil, err
		}
		return &Schema{Type: "array", Items: items}, nil
	case reflect.Struct:
		return ctx.generateStruct(t, isRoot)
	default:
		return nil, fmt.Errorf("jsonschema: type %s (%s) is not supported in strict mode", t, t.Kind())
	}
}

func (ctx *schemaContext) generateStruct(t reflect.Type, isRoot bool) (*Schema, error) {
	if defName, exists := ctx.visited[t]; exists {
		if defName == "" {
			// revisited the root while it is still being built
			return &Schema{Ref: "#"}, nil
		}
		return &Schema{Ref: "#/$defs/" + defName}, nil
	}

	recursive := hasRecursiveFields(t)
	defName := ""
	if recursive && !isRoot {
		defName = generateDefName(t)
	}
	ctx.visited[t] = defName

	schema := &Schema{
		Type:                 "object",
		Properties:           make(map[string]*Schema),
		Required:             make([]string, 0, t.NumField()),
		AdditionalProperties: false,
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		fieldName, skip := jsonFieldName(field)
		if skip {
			continue
		}

		fieldSchema, err := ctx.generate(field.Type, false)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", field.Name, err)
		}
		if fieldSchema.Ref == "" {
			if err := parseJSONSchemaTag(field.Type, field.Tag, fieldSchema); err != nil {
				return nil, fmt.Errorf("field %s: %w", field.Name, err)
			}
		}

		schema.Properties[fieldName] = fieldSchema
		schema.Required = append(schema.Required, fieldName)
	}

	// types only reachable through themselves stay visited for the rest of
	// the walk; everything else may be inlined again elsewhere
	if !recursive {
		delete(ctx.visited, t)
	}

	if defName != "" {
		ctx.defs[defName] = schema
		return &Schema{Ref: "#/$defs/" + defName}, nil
	}
	return schema, nil
}

// jsonFieldName returns the property name for a struct field and whether the
// field is excluded from the schema.
func jsonFieldName(field reflect.StructField) (string, bool) {
	jsonTag := field.Tag.Get("json")
	if jsonTag == "-" {
		return "", true
	}
	name, _, _ := strings.Cut(jsonTag, ",")
	if name == "" {
		name = field.Name
	}
	return name, false
}

// hasRecursiveFields checks if a struct type has fields that reference itself
func hasRecursiveFields(t reflect.Type) bool {
	return checkRecursion(t, t, make(map[reflect.Type]bool))
}

// checkRecursion recursively checks if targetType appears in the fields of currentType
func checkRecursion(targetType, currentType reflect.Type, visited map[reflect.Type]bool) bool {
	if visited[currentType] {
		return false
	}
	visited[currentType] = true

	for i := 0; i < currentType.NumField(); i++ {
		field := currentType.Field(i)
		if !field.IsExported() {
			continue
		}

		fieldType := field.Type
		for fieldType.Kind() == reflect.Ptr || fieldType.Kind() == reflect.Slice || fieldType.Kind() == reflect.Array {
			fieldType = fieldType.Elem()
		}

		if fieldType == targetType {
			return true
		}
		if fieldType.Kind() == reflect.Struct && checkRecursion(targetType, fieldType, visited) {
			return true
		}
	}
	return false
}

func generateDefName(t reflect.Type) string {
	if t.Name() != "" {
		return strings.ToLower(t.Name())
	}
	return "anonymousStruct"
}

// parseJSONSchemaTag applies the `jsonschema` struct tag to schema.
// Supported keys:
//   - description=xxx
//   - enum=a,enum=b (values converted to the field's kind)
//
// The legacy "required" key is accepted and ignored: strict mode already
// requires every property.
func parseJSONSchemaTag(fieldType reflect.Type, tag reflect.StructTag, schema *Schema) error {
	jsonSchemaTag := tag.Get("jsonschema")
	if jsonSchemaTag == "" {
		return nil
	}

	for fieldType.Kind() == reflect.Ptr {
		fieldType = fieldType.Elem()
	}

	for _, tagItem := range strings.Split(jsonSchemaTag, ",") {
		key, value, hasValue := strings.Cut(tagItem, "=")
		if !hasValue {
			continue
		}

		switch key {
		case "description":
			schema.Description = value
		case "enum":
			enumValue, err := convertEnumValue(fieldType, value)
			if err != nil {
				return err
			}
			schema.Enum = append(schema.Enum, enumValue)
		}
	}
	return nil
}

func convertEnumValue(fieldType reflect.Type, value string) (any, error) {
	switch fieldType.Kind() {
	case reflect.String:
		return value, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse enum value %v to int64 failed: %w", value, err)
		}
		return v, nil
	case reflect.Float32, reflect.Float64:
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("parse enum value %v to float64 failed: %w", value, err)
		}
		return v, nil
	case reflect.Bool:
		v, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("parse enum value %v to bool failed: %w", value, err)
		}
		return v, nil
	default:
		return nil, fmt.Errorf("enum tag unsupported for field type: %v", fieldType)
	}
}

// JsonString converts the Schema to its JSON representation.
// Pass true to indent the output.
func (s *Schema) JsonString(indent ...bool) (string, error) {
	var (
		jsonBytes []byte
		err       error
	)
	if len(indent) > 0 && indent[0] {
		jsonBytes, err = json.MarshalIndent(s, "", "  ")
	} else {
		jsonBytes, err = json.Marshal(s)
	}
	if err != nil {
		return "", fmt.Errorf("failed to marshal schema to JSON: %w", err)
	}
	return string(jsonBytes), nil
}

// String returns the compact JSON representation of the schema.
func (s *Schema) String() string {
	jsonStr, err := s.JsonString()
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return jsonStr
}
