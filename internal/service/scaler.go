package service

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/pageza/recipe-vault/backend/internal/model"
)

// ScaledAmount is an ingredient amount adjusted to a serving count.
// Whole values render without decimals, others with exactly two.
type ScaledAmount struct {
	Value float64
	whole bool
}

// IsWhole reports whether the scaled value is an integer.
func (a ScaledAmount) IsWhole() bool {
	return a.whole
}

func (a ScaledAmount) String() string {
	if a.whole {
		return strconv.FormatFloat(a.Value, 'f', -1, 64)
	}
	return toFixed2(a.Value)
}

// toFixed2 formats v with two decimals, rounding the exact binary value of
// v half up by magnitude. Values just under a .xx5 boundary round down.
func toFixed2(v float64) string {
	sign := ""
	if math.Signbit(v) && v != 0 {
		sign = "-"
		v = -v
	}
	hundredths := new(big.Float).SetPrec(128).SetFloat64(v)
	hundredths.Mul(hundredths, big.NewFloat(100))
	hundredths.Add(hundredths, big.NewFloat(0.5))
	n, _ := hundredths.Int(nil)

	digits := n.String()
	if len(digits) < 3 {
		digits = strings.Repeat("0", 3-len(digits)) + digits
	}
	return sign + digits[:len(digits)-2] + "." + digits[len(digits)-2:]
}

// MarshalJSON encodes whole amounts as numbers and fractional ones as strings.
func (a ScaledAmount) MarshalJSON() ([]byte, error) {
	if a.whole {
		return []byte(a.String()), nil
	}
	return []byte(strconv.Quote(a.String())), nil
}

// ScaleAmount scales amount from originalServings to targetServings. The
// target is not clamped; callers keep it at one or more.
func ScaleAmount(amount float64, targetServings, originalServings int) (ScaledAmount, error) {
	if originalServings <= 0 {
		return ScaledAmount{}, ErrInvalidServings
	}
	ratio := float64(targetServings) / float64(originalServings)
	scaled := amount * ratio
	return ScaledAmount{Value: scaled, whole: math.Mod(scaled, 1) == 0}, nil
}

// ScaledIngredient is an ingredient line with its display amount.
type ScaledIngredient struct {
	Name     string         `json:"name"`
	Amount   ScaledAmount   `json:"amount"`
	Unit     string         `json:"unit"`
	Category model.Category `json:"category"`
}

// ScaleIngredients scales every ingredient of recipe to targetServings.
func ScaleIngredients(recipe model.Recipe, targetServings int) ([]ScaledIngredient, error) {
	out := make([]ScaledIngredient, 0, len(recipe.Ingredients))
	for _, ing := range recipe.Ingredients {
		amount, err := ScaleAmount(ing.Amount, targetServings, recipe.Servings)
		if err != nil {
			return nil, err
		}
		out = append(out, ScaledIngredient{
			Name:     ing.Name,
			Amount:   amount,
			Unit:     ing.Unit,
			Category: ing.Category,
		})
	}
	return out, nil
}
