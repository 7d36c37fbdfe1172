package graph

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/fuad-daoud/discord-gateway/logger/dlog"
)

// Cypher renders a node pattern `(key:Labels {props})` out of a struct
// value. Embedded structs contribute extra labels.
func Cypher(key string, val any) string {
	properties, err := ToProperties(val)
	if err != nil {
		dlog.Error("Cypher: "+err.Error(), "err", err)
		return ""
	}

	labels := strings.Builder{}
	ifv := reflect.ValueOf(val)
	ift := reflect.TypeOf(val)
	for i := 0; i < ift.NumField(); i++ {
		if ifv.Field(i).Kind() == reflect.Struct {
			labels.WriteString(":" + ifv.Field(i).Type().Name())
		}
	}
	labels.WriteString(":" + ift.Name())

	return fmt.Sprintf("(%s%s %s)", key, labels.String(), properties)
}

// ToProperties renders the exported, non-empty fields of a struct as a
// cypher property map literal.
func ToProperties(val any) (string, error) {
	if val == nil {
		return "", errors.New("val in ToProperties can't be nil")
	}

	m, err := toMap(val)
	if err != nil {
		return "", err
	}

	builder := strings.Builder{}
	builder.WriteString("{")
	for key, value := range m {
		property, ok := toProperty(value)
		if !ok {
			continue
		}
		builder.WriteString(fmt.Sprintf(`%s: `, key))
		builder.WriteString(property)
	}
	properties := builder.String()
	if len(properties) == 1 {
		return "", nil
	}
	// swap the trailing separator for the closing brace
	return properties[:len(properties)-1] + "}", nil
}

func toProperty(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		if v == "" {
			return "", false
		}
		return fmt.Sprintf("%q,", v), true
	case float64:
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d,", int64(v)), true
		}
		return fmt.Sprintf("%v,", v), true
	case bool:
		return fmt.Sprintf("%v,", v), true
	case []any:
		parts := make([]string, 0, len(v))
		for _, element := range v {
			part, ok := toProperty(element)
			if !ok {
				continue
			}
			parts = append(parts, strings.TrimSuffix(part, ","))
		}
		return "[" + strings.Join(parts, ",") + "],", true
	default:
		return "", false
	}
}

func toMap(in any) (map[string]any, error) {
	raw, err := json.Marshal(in)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	_ = json.Unmarshal(raw, &m)
	return m, nil
}

// ParseKey decodes the first record's node under key into a typed value.
func ParseKey[T any](key string, records []*neo4j.Record) (T, bool) {
	var result T
	if len(records) == 0 {
		return result, false
	}
	value, ok := records[0].Get(key)
	if !ok {
		dlog.Error("Invalid key", "key", key)
		return result, false
	}
	node, ok := value.(neo4j.Node)
	if !ok {
		return result, false
	}
	_ = mapstructure.Decode(node.Props, &result)
	return result, true
}

func MatchN(key string, val any) string {
	return "MATCH " + Cypher(key, val)
}

func MergeN(key string, val any) string {
	return "MERGE " + Cypher(key, val)
}

func CreateN(key string, val any) string {
	return "CREATE " + Cypher(key, val)
}

func Merge(stmt string) string {
	return "MERGE " + stmt
}

func Set(key string, val any) (string, error) {
	properties, err := ToProperties(val)
	if err != nil {
		return "", err
	}
	return "SET " + key + "=" + properties, nil
}

func Return(keys ...string) string {
	return "RETURN " + strings.Join(keys, ",")
}

func Detach(keys ...string) string {
	return "DETACH DELETE " + strings.Join(keys, ",")
}
