package cache

import (
	"testing"
	"time"
)

func TestNewCache(t *testing.T) {
	c := NewCache()
	if c == nil {
		t.Fatal("NewCache returned nil")
	}
}

func TestGetInstance(t *testing.T) {
	inst := GetInstance()
	if inst == nil {
		t.Fatal("GetInstance returned nil")
	}
	if GetInstance() != inst {
		t.Error("GetInstance should return same instance")
	}
}

func TestSet_Get(t *testing.T) {
	c := NewCache()
	key := "minifig:fig-001234"
	c.Set(key, "val", 0, nil)
	got, ok := c.Get(key)
	if !ok {
		t.Fatal("Get: want true")
	}
	if got != "val" {
		t.Errorf("Get = %v, want val", got)
	}
}

func TestGet_Missing(t *testing.T) {
	c := NewCache()
	_, ok := c.Get("nonexistent-key-xyz")
	if ok {
		t.Error("Get missing key: want false")
	}
}

func TestGet_Expired(t *testing.T) {
	c := NewCache()
	key := "expiring"
	c.Set(key, "v", 1, nil)
	// Force expiry by backdating the stored item
	c.m.Store(key, cacheItem{Value: "v", ExpiresAt: time.Now().Add(-time.Second).UnixNano()})
	if _, ok := c.Get(key); ok {
		t.Error("Get expired key: want false")
	}
	// Expired entry must be evicted, not just hidden
	if _, loaded := c.m.Load(key); loaded {
		t.Error("expired entry still stored")
	}
}

func TestDelete(t *testing.T) {
	c := NewCache()
	key := "test-delete"
	c.Set(key, "x", 0, nil)
	c.Delete(key)
	if _, ok := c.Get(key); ok {
		t.Error("Delete: key should be gone")
	}
}

func TestGetOrDef(t *testing.T) {
	c := NewCache()
	key := "test-default"
	def := "default"
	if got := c.GetOrDef(key, def); got != def {
		t.Errorf("GetOrDef missing = %v, want %v", got, def)
	}
	c.Set(key, "stored", 0, nil)
	if got := c.GetOrDef(key, def); got != "stored" {
		t.Errorf("GetOrDef found = %v, want stored", got)
	}
}

func TestSetN_GetN_DeleteN(t *testing.T) {
	c := NewCache()
	c.SetN([]interface{}{"set", "75192-1"}, "composite-val", 0, nil)
	got, ok := c.GetN("set", "75192-1")
	if !ok || got != "composite-val" {
		t.Errorf("GetN = %v, %v; want composite-val, true", got, ok)
	}
	c.DeleteN("set", "75192-1")
	if _, ok = c.GetN("set", "75192-1"); ok {
		t.Error("DeleteN: key should be gone")
	}
}

func TestTagKey_GetKeysByTag_DeleteByTag(t *testing.T) {
	c := NewCache()
	key1, key2 := "inventory:10179-1", "minifigs:10179-1"
	c.Set(key1, "v1", 0, []string{"set:10179-1"})
	c.Set(key2, "v2", 0, []string{"set:10179-1"})

	keys := c.GetKeysByTag("set:10179-1")
	if len(keys) != 2 {
		t.Errorf("GetKeysByTag = %d keys, want 2", len(keys))
	}

	c.DeleteByTag("set:10179-1")
	if _, ok := c.Get(key1); ok {
		t.Error("DeleteByTag: key1 should be gone")
	}
	if _, ok := c.Get(key2); ok {
		t.Error("DeleteByTag: key2 should be gone")
	}
	if keys := c.GetKeysByTag("set:10179-1"); len(keys) != 0 {
		t.Errorf("GetKeysByTag after DeleteByTag = %d keys, want 0", len(keys))
	}
}
