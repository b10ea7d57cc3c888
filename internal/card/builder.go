package card

import (
	"errors"
	"fmt"
	"strings"

	"github.com/arcanaland/cardconv/internal/cell"
	"github.com/arcanaland/cardconv/internal/table"
)

// ErrMissingColumn is returned when a row lacks a column the builder
// cannot recover from
var ErrMissingColumn = errors.New("missing required column")

// Source columns
const (
	ColID             = "ID"
	ColName           = "Name"
	ColCardType       = "CardType"
	ColEvolutionStage = "EvolutionStage"
	ColPack           = "Pack"
	ColHP             = "HP"
	ColType           = "Type"
	ColWeakness       = "Weakness"
	ColRetreatCost    = "RetreatCost"
	ColAbilityName    = "AbilityName"
	ColAbility        = "Ability"
	ColMaxDamage      = "MaxDamage"
	ColMaxEnergyCost  = "MaxEnergyCost"
	ColTags           = "Tags"
	ColImageKey       = "ImageKey"
)

// Move slot prefixes, in output order
var MoveSlots = []string{"Move1", "Move2"}

// RequiredColumns must be present in every row
var RequiredColumns = []string{
	ColID, ColName, ColCardType, ColHP, ColType, ColWeakness,
	ColRetreatCost, ColTags, ColImageKey,
}

// OptionalColumns fall back to zero values when missing
var OptionalColumns = optionalColumns()

func optionalColumns() []string {
	cols := []string{
		ColEvolutionStage, ColPack, ColAbilityName, ColAbility,
		ColMaxDamage, ColMaxEnergyCost,
	}
	for _, slot := range MoveSlots {
		cols = append(cols, slot+"Name", slot+"Damage", slot+"Effect")
	}
	return cols
}

// BuildCard maps one table row to a Card.
//
// Note that abilityEffect is read from the "Ability" column, not
// "AbilityName".
func BuildCard(row *table.Row) (Card, error) {
	var missing []string
	for _, col := range RequiredColumns {
		if !row.Has(col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return Card{}, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}

	c := Card{
		ID:             row.Get(ColID).String(),
		Name:           passThrough(row.Get(ColName)),
		CardType:       cell.NormalizeString(row.Get(ColCardType)),
		EvolutionStage: cell.NormalizeString(row.Get(ColEvolutionStage)),
		Pack:           cell.NormalizeString(row.Get(ColPack)),
		HP:             cell.NormalizeInt(row.Get(ColHP)),
		Type:           cell.NormalizeString(row.Get(ColType)),
		Weakness:       cell.NormalizeString(row.Get(ColWeakness)),
		RetreatCost:    cell.NormalizeInt(row.Get(ColRetreatCost)),
		AbilityName:    cell.NormalizeString(row.Get(ColAbilityName)),
		AbilityEffect:  cell.NormalizeString(row.Get(ColAbility)),
		Moves:          []Move{},
		MaxDamage:      cell.NormalizeInt(row.Get(ColMaxDamage)),
		MaxEnergyCost:  cell.NormalizeInt(row.Get(ColMaxEnergyCost)),
		Tags:           cell.NormalizeTags(row.Get(ColTags)),
		ImageKey:       cell.NormalizeString(row.Get(ColImageKey)),
	}

	for _, slot := range MoveSlots {
		if m := BuildMove(row, slot); m != nil {
			c.Moves = append(c.Moves, *m)
		}
	}

	return c, nil
}

// BuildMove reads the <prefix>Name, <prefix>Damage and <prefix>Effect
// columns. It returns nil when the name cell has no value and the effect is
// not text. A non-text name with a text effect still yields a move.
func BuildMove(row *table.Row, prefix string) *Move {
	name := row.Get(prefix + "Name")
	damage := row.Get(prefix + "Damage")
	effect := row.Get(prefix + "Effect")

	if name.IsNoValue() && !effect.IsString() {
		return nil
	}

	return &Move{
		Name:   cell.NormalizeString(name),
		Damage: cell.NormalizeInt(damage),
		Effect: cell.NormalizeString(effect),
	}
}

// passThrough keeps the Name cell as the table holds it. Numbers keep their
// table rendering; an empty cell becomes "".
func passThrough(v cell.Value) string {
	if v.IsNoValue() {
		return ""
	}
	return v.String()
}
