package models

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(id, code string) Client {
	return Client{
		ID:      id,
		Code:    code,
		Name:    "Client " + id,
		Phone:   "+1000000" + id,
		Country: "US",
		Status:  ClientStatusActive,
	}
}

func TestClientStore_PutAndByID(t *testing.T) {
	s := NewClientStore()
	s.Put(testClient("1", "CODE1"))

	c, ok := s.ByID("1")
	require.True(t, ok)
	assert.Equal(t, "CODE1", c.Code)
	assert.Equal(t, "Client 1", c.Name)
}

func TestClientStore_ByIDMissing(t *testing.T) {
	s := NewClientStore()
	_, ok := s.ByID("nope")
	assert.False(t, ok)
}

func TestClientStore_ByCode(t *testing.T) {
	s := NewClientStore()
	s.Put(testClient("1", "CODE1"))

	c, ok := s.ByCode("CODE1")
	require.True(t, ok)
	assert.Equal(t, "1", c.ID)

	_, ok = s.ByCode("code1")
	assert.False(t, ok, "code lookup is case-sensitive")
}

func TestClientStore_HasCode(t *testing.T) {
	s := NewClientStore()
	assert.False(t, s.HasCode("CODE1"))
	s.Put(testClient("1", "CODE1"))
	assert.True(t, s.HasCode("CODE1"))
}

func TestClientStore_AllPreservesInsertionOrder(t *testing.T) {
	s := NewClientStore()
	for i := 0; i < 5; i++ {
		id := fmt.Sprintf("%d", i)
		s.Put(testClient(id, "CODE"+id))
	}

	all := s.All()
	require.Len(t, all, 5)
	for i, c := range all {
		assert.Equal(t, fmt.Sprintf("%d", i), c.ID)
	}
}

func TestClientStore_ByIDReturnsCopy(t *testing.T) {
	s := NewClientStore()
	s.Put(testClient("1", "CODE1"))

	c, _ := s.ByID("1")
	c.Name = "mutated"

	original, _ := s.ByID("1")
	assert.Equal(t, "Client 1", original.Name)
}

func TestClientStore_PutReplacesAndReindexesCode(t *testing.T) {
	s := NewClientStore()
	s.Put(testClient("1", "OLD"))

	updated := testClient("1", "NEW")
	s.Put(updated)

	assert.Equal(t, 1, s.Len())
	assert.False(t, s.HasCode("OLD"))
	assert.True(t, s.HasCode("NEW"))
}

func TestClientStore_ByStatus(t *testing.T) {
	s := NewClientStore()
	active := testClient("1", "A")
	inactive := testClient("2", "B")
	inactive.Status = ClientStatusInactive
	s.Put(active)
	s.Put(inactive)

	result := s.ByStatus(ClientStatusActive)
	require.Len(t, result, 1)
	assert.Equal(t, "1", result[0].ID)
}

func TestClientStore_Delete(t *testing.T) {
	s := NewClientStore()
	s.Put(testClient("1", "CODE1"))
	s.Put(testClient("2", "CODE2"))

	assert.True(t, s.Delete("1"))
	assert.Equal(t, 1, s.Len())
	assert.False(t, s.HasCode("CODE1"))

	all := s.All()
	require.Len(t, all, 1)
	assert.Equal(t, "2", all[0].ID)
}

func TestClientStore_DeleteMissing(t *testing.T) {
	s := NewClientStore()
	assert.False(t, s.Delete("nope"))
}

func TestClientStore_Replace(t *testing.T) {
	s := NewClientStore()
	s.Put(testClient("1", "OLD"))

	s.Replace([]Client{testClient("2", "NEW1"), testClient("3", "NEW2")})

	assert.Equal(t, 2, s.Len())
	assert.False(t, s.HasCode("OLD"))
	_, ok := s.ByID("2")
	assert.True(t, ok)
	_, ok = s.ByID("3")
	assert.True(t, ok)
}

func TestClientStore_ReplaceEmpty(t *testing.T) {
	s := NewClientStore()
	s.Put(testClient("1", "CODE1"))
	s.Replace(nil)
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.All())
}
