package view

import (
	"github.com/charmbracelet/huh"

	"github.com/MrJamesThe3rd/copycorner/internal/product"
	"github.com/MrJamesThe3rd/copycorner/internal/servicetype"
	"github.com/MrJamesThe3rd/copycorner/internal/transaction"
)

// ProductsByCategory lists the products offered for a service category.
type ProductsByCategory func(category string) ([]*product.Product, error)

// draftForm edits a transaction draft. Values live behind a pointer so the
// huh bindings survive bubbletea copying the enclosing model.
type draftForm struct {
	form    *huh.Form
	draft   *transaction.Draft
	editing *transaction.Transaction

	initialProduct string
}

func newDraftForm(
	types []*servicetype.ServiceType,
	products ProductsByCategory,
	initial transaction.Draft,
	editing *transaction.Transaction,
) *draftForm {
	d := &initial
	initialProduct := d.ProductName

	categories := make(map[string]string, len(types))
	serviceOpts := make([]huh.Option[string], 0, len(types))

	for _, st := range types {
		categories[st.Name] = st.CategoryName
		serviceOpts = append(serviceOpts, huh.NewOption(st.Name, st.Name))
	}

	if d.ServiceType == "" && len(types) > 0 {
		d.ServiceType = types[0].Name
	}

	kind := func() transaction.CategoryKind {
		return transaction.KindOf(categories[d.ServiceType])
	}

	productOpts := func() []huh.Option[string] {
		opts := []huh.Option[string]{huh.NewOption("(none)", "")}

		category := categories[d.ServiceType]
		if category == "" {
			return opts
		}

		list, err := products(category)
		if err != nil {
			return opts
		}

		for _, p := range list {
			label := p.Name + "  [" + string(p.Status()) + "]"
			opts = append(opts, huh.NewOption(label, p.Name))
		}

		return opts
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("customer_name").
				Title("Customer name").
				Value(&d.CustomerName).
				Validate(fieldRule(transaction.ValidateCustomerName)),

			huh.NewSelect[string]().
				Key("service_type").
				Title("Service type").
				Options(serviceOpts...).
				Value(&d.ServiceType),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("product").
				Title("Product").
				OptionsFunc(productOpts, &d.ServiceType).
				Value(&d.ProductName),

			huh.NewInput().
				Key("total_pages").
				Title("Total pages").
				Placeholder("paper only").
				Value(&d.TotalPages).
				Validate(fieldRule(func(s string) *transaction.FieldError {
					return transaction.ValidatePages(s, kind() == transaction.KindPaper)
				})),

			huh.NewInput().
				Key("price_per_unit").
				Title("Price per unit").
				Value(&d.PricePerUnit).
				Validate(fieldRule(transaction.ValidatePrice)),

			huh.NewInput().
				Key("quantity").
				Title("Quantity").
				Value(&d.Quantity).
				Validate(fieldRule(transaction.ValidateQuantity)),

			huh.NewNote().
				TitleFunc(func() string {
					return "Total: " + FormatMoney(transaction.ComputeTotalAmount(d.PricePerUnit, d.Quantity))
				}, d),
		),
	).WithWidth(50).WithShowHelp(false)

	return &draftForm{
		form:           form,
		draft:          d,
		editing:        editing,
		initialProduct: initialProduct,
	}
}

// result is the draft as entered. The id from an edited record only stays
// valid while the product label is unchanged.
func (f *draftForm) result() transaction.Draft {
	d := *f.draft
	if d.ProductName != f.initialProduct {
		d.ProductID = nil
	}

	return d
}
