package pricing

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	pkgerrors "github.com/ordena-app/ordena-backend/pkg/errors"
)

const basisPointsPerUnit = 10000

// SelectedOption references one chosen option choice within a group.
type SelectedOption struct {
	GroupID  uuid.UUID
	ChoiceID uuid.UUID
}

// ChoiceSnapshot is the price-relevant view of an option choice at call time.
type ChoiceSnapshot struct {
	ID              uuid.UUID
	Name            string
	PriceDeltaCents int
}

// GroupSnapshot is the option group as resolved by the caller, including the
// selection bounds enforced here.
type GroupSnapshot struct {
	ID        uuid.UUID
	Name      string
	MinSelect int
	MaxSelect int
	Choices   []ChoiceSnapshot
}

// LineInput is one cart line with the price/VAT snapshot resolved by the
// caller. The calculator never reads live catalog data, so stored totals can
// never drift when menu prices change later.
type LineInput struct {
	ItemID             uuid.UUID
	Name               string
	Quantity           int
	UnitPriceCents     int
	VatRateBasisPoints int
	Groups             []GroupSnapshot
	Selections         []SelectedOption
}

// PricedOption is a resolved selection carried into the order snapshot.
type PricedOption struct {
	GroupID         uuid.UUID
	ChoiceID        uuid.UUID
	Name            string
	PriceDeltaCents int
}

// PricedLine is one calculated order line.
type PricedLine struct {
	ItemID             uuid.UUID
	Name               string
	Quantity           int
	UnitPriceCents     int
	OptionsPriceCents  int
	LineTotalCents     int
	VatRateBasisPoints int
	VatCents           int
	Options            []PricedOption
}

// Totals aggregates the order. Subtotal excludes VAT; Total = Subtotal + Vat.
type Totals struct {
	SubtotalCents int
	VatCents      int
	TotalCents    int
}

// Quote is the result of pricing a cart.
type Quote struct {
	Lines  []PricedLine
	Totals Totals
}

// Price computes per-line and order totals from the supplied snapshots.
// lineTotal = quantity * (unitPrice + optionsPrice); VAT is computed per line
// on the gross at the line's basis-point rate, rounded half-up to the cent.
func Price(lines []LineInput) (*Quote, error) {
	if len(lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order must contain at least one line")
	}

	quote := &Quote{Lines: make([]PricedLine, 0, len(lines))}
	for i, line := range lines {
		priced, err := priceLine(line)
		if err != nil {
			if typed := pkgerrors.As(err); typed != nil {
				return nil, typed.WithDetails(map[string]any{"line": i})
			}
			return nil, err
		}
		quote.Lines = append(quote.Lines, *priced)
		quote.Totals.SubtotalCents += priced.LineTotalCents
		quote.Totals.VatCents += priced.VatCents
	}
	quote.Totals.TotalCents = quote.Totals.SubtotalCents + quote.Totals.VatCents
	return quote, nil
}

func priceLine(line LineInput) (*PricedLine, error) {
	if line.Quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}
	if line.VatRateBasisPoints < 0 || line.VatRateBasisPoints > basisPointsPerUnit {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vat rate out of range")
	}

	groupsByID := make(map[uuid.UUID]GroupSnapshot, len(line.Groups))
	for _, group := range line.Groups {
		groupsByID[group.ID] = group
	}

	optionsPrice := 0
	selectionsPerGroup := make(map[uuid.UUID]int, len(line.Groups))
	options := make([]PricedOption, 0, len(line.Selections))
	for _, selection := range line.Selections {
		group, ok := groupsByID[selection.GroupID]
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "selection references unknown option group")
		}
		choice, ok := findChoice(group, selection.ChoiceID)
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("choice does not belong to option group %q", group.Name))
		}
		selectionsPerGroup[group.ID]++
		optionsPrice += choice.PriceDeltaCents
		options = append(options, PricedOption{
			GroupID:         group.ID,
			ChoiceID:        choice.ID,
			Name:            choice.Name,
			PriceDeltaCents: choice.PriceDeltaCents,
		})
	}

	for _, group := range line.Groups {
		count := selectionsPerGroup[group.ID]
		if count < group.MinSelect || count > group.MaxSelect {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("option group %q requires between %d and %d selections", group.Name, group.MinSelect, group.MaxSelect))
		}
	}

	lineTotal := line.Quantity * (line.UnitPriceCents + optionsPrice)
	if lineTotal < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "line total cannot be negative")
	}

	return &PricedLine{
		ItemID:             line.ItemID,
		Name:               line.Name,
		Quantity:           line.Quantity,
		UnitPriceCents:     line.UnitPriceCents,
		OptionsPriceCents:  optionsPrice,
		LineTotalCents:     lineTotal,
		VatRateBasisPoints: line.VatRateBasisPoints,
		VatCents:           vatFor(lineTotal, line.VatRateBasisPoints),
		Options:            options,
	}, nil
}

func findChoice(group GroupSnapshot, choiceID uuid.UUID) (ChoiceSnapshot, bool) {
	for _, choice := range group.Choices {
		if choice.ID == choiceID {
			return choice, true
		}
	}
	return ChoiceSnapshot{}, false
}

// vatFor rounds half-up to the nearest cent. DivRound rounds half away from
// zero, which equals half-up for the non-negative amounts reaching it.
func vatFor(lineTotalCents, rateBasisPoints int) int {
	vat := decimal.NewFromInt(int64(lineTotalCents)).
		Mul(decimal.NewFromInt(int64(rateBasisPoints))).
		DivRound(decimal.NewFromInt(basisPointsPerUnit), 0)
	return int(vat.IntPart())
}
