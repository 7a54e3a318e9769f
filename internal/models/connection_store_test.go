package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectionStore_SetAndGet(t *testing.T) {
	s := NewConnectionStore()
	s.Set("client-1", Connection{Connected: true, Timestamp: time.Now()})

	conn, ok := s.Get("client-1")
	require.True(t, ok)
	assert.True(t, conn.Connected)
}

func TestConnectionStore_GetMissing(t *testing.T) {
	s := NewConnectionStore()
	_, ok := s.Get("nope")
	assert.False(t, ok)
}

func TestConnectionStore_SetOverwrites(t *testing.T) {
	s := NewConnectionStore()
	s.Set("client-1", Connection{Connected: true})
	s.Set("client-1", Connection{Connected: false})

	conn, _ := s.Get("client-1")
	assert.False(t, conn.Connected)
	assert.Equal(t, 1, s.Len())
}

func TestConnectionStore_Delete(t *testing.T) {
	s := NewConnectionStore()
	s.Set("client-1", Connection{Connected: true})
	s.Delete("client-1")

	_, ok := s.Get("client-1")
	assert.False(t, ok)
	assert.Equal(t, 0, s.Len())
}

func TestConnectionStore_ConnectedCount(t *testing.T) {
	s := NewConnectionStore()
	s.Set("a", Connection{Connected: true})
	s.Set("b", Connection{Connected: false})
	s.Set("c", Connection{Connected: true})

	assert.Equal(t, 2, s.ConnectedCount())
}

func TestConnectionStore_AllReturnsCopy(t *testing.T) {
	s := NewConnectionStore()
	s.Set("a", Connection{Connected: true})

	all := s.All()
	all["b"] = Connection{Connected: true}

	assert.Equal(t, 1, s.Len())
}

func TestConnectionStore_Replace(t *testing.T) {
	s := NewConnectionStore()
	s.Set("old", Connection{Connected: true})

	s.Replace(map[string]Connection{
		"new": {Connected: false},
	})

	_, ok := s.Get("old")
	assert.False(t, ok)
	_, ok = s.Get("new")
	assert.True(t, ok)
}
