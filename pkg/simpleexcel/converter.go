package simpleexcel

import (
	"fmt"
	"reflect"
	"strings"
)

// ColumnsOf derives one column per exported field of the element type of
// data, a slice of structs or struct pointers. Headers come from the json tag
// when present.
func ColumnsOf(data interface{}) ([]ColumnConfig, error) {
	t := reflect.TypeOf(data)
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Slice {
		return nil, fmt.Errorf("expected slice, got %v", t)
	}
	elem := t.Elem()
	for elem.Kind() == reflect.Ptr {
		elem = elem.Elem()
	}
	if elem.Kind() != reflect.Struct {
		return nil, fmt.Errorf("expected slice of structs, got slice of %v", elem.Kind())
	}

	var cols []ColumnConfig
	for i := 0; i < elem.NumField(); i++ {
		field := elem.Field(i)
		if !field.IsExported() {
			continue
		}
		header := field.Name
		if tag, _, _ := strings.Cut(field.Tag.Get("json"), ","); tag == "-" {
			continue
		} else if tag != "" {
			header = tag
		}
		cols = append(cols, ColumnConfig{FieldName: field.Name, Header: header})
	}
	return cols, nil
}

// ConvertToDynamicData flattens a struct, or a slice of structs, into maps
// keyed by field name. Map-typed fields are expanded to "Field_key" entries.
func ConvertToDynamicData(data interface{}) (interface{}, error) {
	val := indirect(reflect.ValueOf(data))

	switch val.Kind() {
	case reflect.Struct:
		return flattenStruct(val), nil
	case reflect.Slice:
		return flattenSlice(val)
	default:
		return nil, fmt.Errorf("expected struct or slice, got %v", val.Kind())
	}
}

func flattenStruct(val reflect.Value) map[string]interface{} {
	result := make(map[string]interface{})

	typ := val.Type()
	for i := 0; i < val.NumField(); i++ {
		fieldType := typ.Field(i)
		if !fieldType.IsExported() {
			continue
		}
		field := val.Field(i)

		if field.Kind() == reflect.Map {
			iter := field.MapRange()
			for iter.Next() {
				result[fmt.Sprintf("%s_%v", fieldType.Name, iter.Key().Interface())] = iter.Value().Interface()
			}
			continue
		}
		result[fieldType.Name] = field.Interface()
	}
	return result
}

func flattenSlice(val reflect.Value) ([]map[string]interface{}, error) {
	result := make([]map[string]interface{}, val.Len())
	for i := 0; i < val.Len(); i++ {
		elem := indirect(val.Index(i))
		if elem.Kind() != reflect.Struct {
			return nil, fmt.Errorf("expected slice of structs, got slice of %v", elem.Kind())
		}
		result[i] = flattenStruct(elem)
	}
	return result, nil
}

// extractValue reads fieldName from a struct or map[string]interface{} item.
func extractValue(item reflect.Value, fieldName string) interface{} {
	item = indirect(item)
	switch item.Kind() {
	case reflect.Struct:
		if f := item.FieldByName(fieldName); f.IsValid() && f.CanInterface() {
			return f.Interface()
		}
	case reflect.Map:
		if item.Type().Key().Kind() == reflect.String {
			if v := item.MapIndex(reflect.ValueOf(fieldName).Convert(item.Type().Key())); v.IsValid() {
				return v.Interface()
			}
		}
	}
	return nil
}

func indirect(v reflect.Value) reflect.Value {
	for v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}
