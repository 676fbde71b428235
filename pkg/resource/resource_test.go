package resource

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type item struct {
	ID   uint
	Name string
}

func itemResource(i item) Map {
	return Map{"id": i.ID, "name": i.Name}
}

func TestOneTransforms(t *testing.T) {
	out := One(itemResource, item{ID: 1, Name: "Розы"})
	assert.Equal(t, Map{"id": uint(1), "name": "Розы"}, out)
}

func TestListPreservesOrder(t *testing.T) {
	out := List(itemResource, []item{{ID: 1, Name: "a"}, {ID: 2, Name: "b"}})
	assert.Equal(t, []Map{
		{"id": uint(1), "name": "a"},
		{"id": uint(2), "name": "b"},
	}, out)
}

func TestListEmptyIsNotNil(t *testing.T) {
	out := List(itemResource, nil)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}
