package export

import (
	"fmt"

	"github.com/thomasgibson/dgviz/nodal"
)

// nameFields assigns display names to fields by position. With no name
// list the defaults are prefix plus 1-based position ("Q1".."Qk",
// "aux1".."auxk"); with a list, names are taken positionally and the
// list length must match the field count.
func nameFields(fields []nodal.Field, names []string, defaultPrefix string) ([]nodal.Field, error) {
	if names == nil {
		for i := range fields {
			fields[i] = fields[i].Rename(fmt.Sprintf("%s%d", defaultPrefix, i+1))
		}
		return fields, nil
	}
	if len(names) != len(fields) {
		return nil, fmt.Errorf("%w: %d names for %d %s fields",
			ErrNameCountMismatch, len(names), len(fields), defaultPrefix)
	}
	for i := range fields {
		fields[i] = fields[i].Rename(names[i])
	}
	return fields, nil
}
