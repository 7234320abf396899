package accounting

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultOwnerRule(t *testing.T) {
	rule := DefaultOwnerRule()

	assert.Equal(t, "Nazir", rule.Assign([]string{"Banner Printing"}))
	assert.Equal(t, "Shabir", rule.Assign([]string{"Card Printing"}))
	assert.Equal(t, "Shabir", rule.Assign(nil))
	assert.Equal(t, "Nazir", rule.Assign([]string{"Card Printing", " sticker printing "}))
}

func TestOwnerRule_OrderIndependent(t *testing.T) {
	rule := NewOwnerRule("Shabir",
		OwnerAssignment{Owner: "Nazir", Categories: []string{"Banner Printing"}},
		OwnerAssignment{Owner: "Aslam", Categories: []string{"Mug Printing"}},
	)

	a := rule.Assign([]string{"Mug Printing", "Banner Printing", "Card Printing"})
	b := rule.Assign([]string{"Card Printing", "Banner Printing", "Mug Printing"})

	assert.Equal(t, "Nazir", a)
	assert.Equal(t, a, b)
	assert.Equal(t, "Aslam", rule.Assign([]string{"Mug Printing"}))
}

func TestOwnerRule_Default(t *testing.T) {
	assert.Equal(t, "Shabir", DefaultOwnerRule().Default())
}
