package publish

import (
	"strings"

	"github.com/google/uuid"

	"github.com/ordena-app/ordena-backend/pkg/enums"
)

// ItemSnapshot carries the menu item fields the publishability rules inspect.
// It is a plain value so the engine stays free of I/O and storage concerns.
type ItemSnapshot struct {
	Name       string
	CategoryID *uuid.UUID
	VatGroupID *uuid.UUID
	PriceCents int
	HasImage   bool
}

// Context supplies store-level facts a rule may need beyond the item itself.
type Context struct {
	// CategoryActive is nil when the category state is unknown to the caller;
	// the engine treats unknown as inactive rather than failing.
	CategoryActive *bool
}

// Issue is one rule violation. Field names the offending item field where one
// applies.
type Issue struct {
	Code  enums.ItemIssueCode `json:"code"`
	Field string              `json:"field,omitempty"`
}

// Result is the outcome of running the full rule catalog.
type Result struct {
	Issues      []Issue `json:"issues"`
	HasIssues   bool    `json:"has_issues"`
	Publishable bool    `json:"publishable"`
}

type rule struct {
	code    enums.ItemIssueCode
	field   string
	applies func(item ItemSnapshot, ctx Context) bool
}

// rules is the closed catalog, in output order. Every rule is independent;
// no rule short-circuits the others.
var rules = []rule{
	{
		code:  enums.ItemIssueMissingName,
		field: "name",
		applies: func(item ItemSnapshot, _ Context) bool {
			return strings.TrimSpace(item.Name) == ""
		},
	},
	{
		code:  enums.ItemIssueMissingVatGroup,
		field: "vat_group_id",
		applies: func(item ItemSnapshot, _ Context) bool {
			return item.VatGroupID == nil || *item.VatGroupID == uuid.Nil
		},
	},
	{
		code:  enums.ItemIssueMissingCategory,
		field: "category_id",
		applies: func(item ItemSnapshot, _ Context) bool {
			return item.CategoryID == nil || *item.CategoryID == uuid.Nil
		},
	},
	{
		code:  enums.ItemIssueZeroPrice,
		field: "price_cents",
		applies: func(item ItemSnapshot, _ Context) bool {
			return item.PriceCents <= 0
		},
	},
	{
		code:  enums.ItemIssueMissingImage,
		field: "image",
		applies: func(item ItemSnapshot, _ Context) bool {
			return !item.HasImage
		},
	},
	{
		code: enums.ItemIssueCategoryInactive,
		applies: func(item ItemSnapshot, ctx Context) bool {
			if item.CategoryID == nil || *item.CategoryID == uuid.Nil {
				// already reported as MISSING_CATEGORY
				return false
			}
			return ctx.CategoryActive == nil || !*ctx.CategoryActive
		},
	},
}

// Validate runs the rule catalog against the item. It is deterministic, has
// no side effects, and never returns an error: malformed input surfaces as
// issues.
func Validate(item ItemSnapshot, ctx Context) Result {
	var issues []Issue
	for _, r := range rules {
		if r.applies(item, ctx) {
			issues = append(issues, Issue{Code: r.code, Field: r.field})
		}
	}
	return Result{
		Issues:      issues,
		HasIssues:   len(issues) > 0,
		Publishable: len(issues) == 0,
	}
}
