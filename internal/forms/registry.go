// Package forms validates and renders TxDOT compliance-form data.
//
// Each form type is a [Definition] listing its columns in order. Definitions
// live in a [Registry] value that callers build and pass around explicitly;
// [DefaultRegistry] returns the four supported forms.
package forms

import (
	"fmt"
	"strings"

	"github.com/JonMunkholm/compliance-reports/internal/core"
)

// Definition describes one form type.
type Definition struct {
	Type   string           // Identifier used on the command line: "dbe_commitment"
	Fields []core.FieldSpec // Mandatory columns, in the order they are checked
}

// Title returns the document heading, e.g. "TxDOT FORM: DBE COMMITMENT".
func (d Definition) Title() string {
	return "TxDOT FORM: " + strings.ToUpper(strings.ReplaceAll(d.Type, "_", " "))
}

// RequiredFields returns the names of the mandatory columns in order.
func (d Definition) RequiredFields() []string {
	var out []string
	for _, f := range d.Fields {
		if f.Required {
			out = append(out, f.Name)
		}
	}
	return out
}

// Registry holds form definitions keyed by type.
type Registry struct {
	defs  map[string]Definition
	order []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]Definition)}
}

// Register adds a definition. Registering the same type twice is an error.
func (r *Registry) Register(def Definition) error {
	if def.Type == "" {
		return fmt.Errorf("form definition has no type")
	}
	if _, exists := r.defs[def.Type]; exists {
		return fmt.Errorf("form already registered: %s", def.Type)
	}
	r.defs[def.Type] = def
	r.order = append(r.order, def.Type)
	return nil
}

// Get returns a definition by type.
func (r *Registry) Get(formType string) (Definition, bool) {
	def, ok := r.defs[formType]
	return def, ok
}

// Lookup returns a definition by type or an error naming the supported types.
func (r *Registry) Lookup(formType string) (Definition, error) {
	def, ok := r.Get(formType)
	if !ok {
		return Definition{}, fmt.Errorf("unknown form type %q (supported: %s)", formType, strings.Join(r.Types(), ", "))
	}
	return def, nil
}

// Types returns the registered form types in registration order.
func (r *Registry) Types() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of registered forms.
func (r *Registry) Len() int {
	return len(r.order)
}

func required(name string, t core.FieldType) core.FieldSpec {
	return core.FieldSpec{Name: name, Type: t, Required: true}
}

// builtin lists the supported TxDOT forms.
var builtin = []Definition{
	{
		Type: "dbe_commitment",
		Fields: []core.FieldSpec{
			required("project_number", core.FieldText),
			required("contractor_name", core.FieldText),
			required("contract_amount", core.FieldAmount),
			required("dbe_firm_name", core.FieldText),
			required("dbe_work_description", core.FieldText),
			required("dbe_amount", core.FieldAmount),
		},
	},
	{
		Type: "monthly_employment",
		Fields: []core.FieldSpec{
			required("project_number", core.FieldText),
			required("contractor_name", core.FieldText),
			required("report_month", core.FieldText),
			required("total_employees", core.FieldInteger),
			required("minority_employees", core.FieldInteger),
			required("female_employees", core.FieldInteger),
		},
	},
	{
		Type: "material_certification",
		Fields: []core.FieldSpec{
			required("project_number", core.FieldText),
			required("supplier_name", core.FieldText),
			required("material_description", core.FieldText),
			required("quantity", core.FieldText),
			required("unit_price", core.FieldAmount),
			required("certification_type", core.FieldText),
		},
	},
	{
		Type: "subcontractor_payment",
		Fields: []core.FieldSpec{
			required("project_number", core.FieldText),
			required("prime_contractor", core.FieldText),
			required("subcontractor_name", core.FieldText),
			required("payment_amount", core.FieldAmount),
			required("payment_date", core.FieldDate),
			required("period_start", core.FieldDate),
			required("period_end", core.FieldDate),
		},
	},
}

// DefaultRegistry returns a new registry holding the four supported forms.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, def := range builtin {
		fields := make([]core.FieldSpec, len(def.Fields))
		copy(fields, def.Fields)
		if err := r.Register(Definition{Type: def.Type, Fields: fields}); err != nil {
			panic(err)
		}
	}
	return r
}
