package opengl

import (
	"testing"
)

func TestNewUniformCache(t *testing.T) {
	cache := NewUniformCache(0)

	if cache == nil {
		t.Fatal("NewUniformCache returned nil")
	}

	if cache.locations == nil {
		t.Error("locations map should be initialized")
	}
}

func TestUniformCacheClear(t *testing.T) {
	cache := NewUniformCache(0)
	cache.locations["lights[0].color"] = 5

	cache.Clear()

	if len(cache.locations) != 0 {
		t.Error("Clear should empty the cache")
	}
}

func TestUniformCacheReturnsCachedLocation(t *testing.T) {
	cache := NewUniformCache(0)
	cache.locations["model"] = 3

	// A cached name must not reach the GL driver.
	if loc := cache.GetLocation("model"); loc != 3 {
		t.Errorf("Expected cached location 3, got %d", loc)
	}
}

func TestLightUniformNames(t *testing.T) {
	if got := lightUniform(2, "color"); got != "lights[2].color" {
		t.Errorf("Unexpected uniform name %q", got)
	}
}
