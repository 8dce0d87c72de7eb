package httpx

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineItemNamePriority(t *testing.T) {
	tests := []struct {
		name string
		dto  LineItemDTO
		want string
	}{
		{"posName wins", LineItemDTO{PosName: "BLT", PosNameSnake: "blt_db", Name: "Bacon Sandwich"}, "BLT"},
		{"pos_name next", LineItemDTO{PosNameSnake: "blt_db", Name: "Bacon Sandwich"}, "blt_db"},
		{"name last", LineItemDTO{Name: "Bacon Sandwich"}, "Bacon Sandwich"},
		{"all empty", LineItemDTO{}, "Unknown"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.dto.toEntity().Name)
		})
	}
}

func TestLineItemQuantityDefaultsToOne(t *testing.T) {
	assert.Equal(t, 1, LineItemDTO{Name: "Burger"}.toEntity().Quantity)
	assert.Equal(t, 1, LineItemDTO{Name: "Burger", Quantity: -2}.toEntity().Quantity)
	assert.Equal(t, 3, LineItemDTO{Name: "Burger", Quantity: 3}.toEntity().Quantity)
}

func TestLineItemPriceFallback(t *testing.T) {
	// totalPrice wins when set; a zero totalPrice falls through to price.
	assert.Equal(t, 12.5, LineItemDTO{TotalPrice: 12.5, Price: 6.25}.toEntity().Price)
	assert.Equal(t, 6.25, LineItemDTO{TotalPrice: 0, Price: 6.25}.toEntity().Price)
}

func TestLineItemModifierListPriority(t *testing.T) {
	dto := LineItemDTO{
		Name:              "Burger",
		SelectedModifiers: []ModifierDTO{{Name: "From POS"}},
		Options:           []ModifierDTO{{Name: "From Admin"}},
		Modifiers:         []ModifierDTO{{Name: "Legacy"}},
	}
	mods := dto.toEntity().Modifiers
	require.Len(t, mods, 1)
	assert.Equal(t, "From POS", mods[0].Name)

	dto.SelectedModifiers = nil
	mods = dto.toEntity().Modifiers
	require.Len(t, mods, 1)
	assert.Equal(t, "From Admin", mods[0].Name)

	dto.Options = nil
	mods = dto.toEntity().Modifiers
	require.Len(t, mods, 1)
	assert.Equal(t, "Legacy", mods[0].Name)
}

func TestModifierDTOUnmarshal(t *testing.T) {
	var item LineItemDTO
	payload := `{
		"name": "Burger",
		"modifiers": ["no onion", {"name": "extra cheese", "price": 0.5}, {"label": "add bacon"}]
	}`
	require.NoError(t, json.Unmarshal([]byte(payload), &item))
	require.Len(t, item.Modifiers, 3)

	assert.Equal(t, ModifierDTO{Name: "no onion"}, item.Modifiers[0])
	assert.Equal(t, ModifierDTO{Name: "extra cheese", Price: 0.5}, item.Modifiers[1])
	assert.Equal(t, ModifierDTO{Name: "add bacon"}, item.Modifiers[2])
}

func TestPrintRequestTotalAmountStaysAbsent(t *testing.T) {
	var dto PrintRequestDTO
	require.NoError(t, json.Unmarshal([]byte(`{"printReceipt": true}`), &dto))
	assert.Nil(t, dto.toEntity().TotalAmount)

	require.NoError(t, json.Unmarshal([]byte(`{"totalAmount": 0}`), &dto))
	req := dto.toEntity()
	require.NotNil(t, req.TotalAmount)
	assert.Equal(t, 0.0, *req.TotalAmount)
}

func TestPrintRequestDefaults(t *testing.T) {
	var dto PrintRequestDTO
	require.NoError(t, json.Unmarshal([]byte(`{}`), &dto))
	req := dto.toEntity()

	// Unknown order types and sources fall back to the safe defaults.
	assert.Equal(t, "to_go", string(req.OrderType))
	assert.Equal(t, "pos", string(req.Source))
}
