// Package catalog defines the fixed set of categorical risk-factor fields
// collected by the dashboard. Each field has a closed domain mapping an
// integer code to a display label; the code sets must match what the
// serialized model was trained on.
package catalog

import "fmt"

// Field is one categorical input of the risk form.
type Field struct {
	Name   string         `json:"name"`
	Label  string         `json:"label"`
	Domain map[int]string `json:"domain"`
	// Codes lists the domain keys in display order.
	Codes []int `json:"codes"`
}

// Selections maps field names to the chosen integer code.
type Selections map[string]int

var fields = []Field{
	{
		Name:  "age_group",
		Label: "Age group",
		Domain: map[int]string{
			1: "18-29", 2: "30-34", 3: "35-39", 4: "40-44", 5: "45-49",
			6: "50-54", 7: "55-59", 8: "60-64", 9: "65-69", 10: "70-74",
			11: "75-79", 12: "80-84", 13: ">85",
		},
		Codes: []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13},
	},
	{
		Name:  "race_eth",
		Label: "Race/Ethnicity",
		Domain: map[int]string{
			1: "White", 2: "Black", 3: "Asian or Pacific Island",
			4: "Native American", 5: "Hispanic", 6: "Other",
		},
		Codes: []int{1, 2, 3, 4, 5, 6},
	},
	{
		Name:  "age_menarche",
		Label: "Age at 1st period",
		Domain: map[int]string{
			0: ">14", 1: "12-13", 2: "<12",
		},
		Codes: []int{0, 1, 2},
	},
	{
		Name:  "age_first_birth",
		Label: "Age at first birth",
		Domain: map[int]string{
			0: "<20", 1: "20-24", 2: "25-29", 3: ">30", 4: "Nulliparous",
		},
		Codes: []int{0, 1, 2, 3, 4},
	},
	{
		Name:  "family_history",
		Label: "Family history of cancer",
		Domain: map[int]string{
			0: "No", 1: "Yes",
		},
		Codes: []int{0, 1},
	},
	{
		Name:  "personal_biopsy",
		Label: "Personal biopsy history",
		Domain: map[int]string{
			0: "No", 1: "Yes",
		},
		Codes: []int{0, 1},
	},
	{
		Name:  "density",
		Label: "BI-RADS density",
		Domain: map[int]string{
			1: "Almost fat", 2: "Scattered", 3: "Hetero-dense", 4: "Extremely",
		},
		Codes: []int{1, 2, 3, 4},
	},
	{
		Name:  "hormone_use",
		Label: "Hormone use",
		Domain: map[int]string{
			0: "No", 1: "Yes",
		},
		Codes: []int{0, 1},
	},
	{
		Name:  "menopausal_status",
		Label: "Menopausal status",
		Domain: map[int]string{
			1: "Pre/peri", 2: "Post", 3: "Surgical",
		},
		Codes: []int{1, 2, 3},
	},
	{
		Name:  "bmi_group",
		Label: "BMI group",
		Domain: map[int]string{
			1: "10-24.9", 2: "25-29.9", 3: "30-34.9", 4: "35+",
		},
		Codes: []int{1, 2, 3, 4},
	},
}

var fieldIndex = buildIndex()

func buildIndex() map[string]*Field {
	index := make(map[string]*Field, len(fields))
	for i := range fields {
		index[fields[i].Name] = &fields[i]
	}
	return index
}

// Fields returns the catalog fields in form order.
func Fields() []Field {
	return fields
}

// FieldNames returns the field names in form order.
func FieldNames() []string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	return names
}

// Lookup returns the field with the given name.
func Lookup(name string) (Field, bool) {
	f, ok := fieldIndex[name]
	if !ok {
		return Field{}, false
	}
	return *f, true
}

// Validate checks every selection against the catalog: the field must
// exist and the code must belong to its domain. Selection through the
// form cannot produce either violation, but API callers can.
func Validate(sel Selections) error {
	for name, code := range sel {
		field, ok := fieldIndex[name]
		if !ok {
			return fmt.Errorf("unknown field %q", name)
		}
		if _, ok := field.Domain[code]; !ok {
			return fmt.Errorf("code %d is outside the domain of field %q", code, name)
		}
	}
	return nil
}
