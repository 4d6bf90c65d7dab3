package enums

// ItemIssueCode identifies a publishability rule violation on a menu item.
// The catalog is closed; adding a rule means adding a code here and a
// predicate in the publish package.
type ItemIssueCode string

const (
	ItemIssueMissingName      ItemIssueCode = "MISSING_NAME"
	ItemIssueMissingVatGroup  ItemIssueCode = "MISSING_VAT_GROUP"
	ItemIssueMissingCategory  ItemIssueCode = "MISSING_CATEGORY"
	ItemIssueZeroPrice        ItemIssueCode = "ZERO_PRICE"
	ItemIssueMissingImage     ItemIssueCode = "MISSING_IMAGE"
	ItemIssueCategoryInactive ItemIssueCode = "CATEGORY_INACTIVE"
)

// String implements fmt.Stringer.
func (c ItemIssueCode) String() string {
	return string(c)
}
