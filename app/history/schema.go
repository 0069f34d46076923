package history

import (
	"reflect"

	"github.com/invopop/jsonschema"

	"github.com/umputun/iqcmaker/app/enums"
)

// Schema returns JSON schema of the persisted history value
func Schema() *jsonschema.Schema {
	r := jsonschema.Reflector{
		DoNotReference: true,
		Anonymous:      true,
		Mapper: func(t reflect.Type) *jsonschema.Schema {
			if t != reflect.TypeOf(enums.JobStatus{}) {
				return nil
			}
			vals := make([]any, 0, len(enums.JobStatusNames))
			for _, name := range enums.JobStatusNames {
				vals = append(vals, name)
			}
			return &jsonschema.Schema{Type: "string", Enum: vals}
		},
	}
	item := r.Reflect(&Record{})
	item.Version = ""

	return &jsonschema.Schema{
		Version:     jsonschema.Version,
		Title:       "iqcmaker history",
		Description: "Job records stored under the " + HistoryKey + " key, in submission order",
		Type:        "array",
		Items:       item,
	}
}
