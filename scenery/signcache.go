// scenery/signcache.go
// Copyright(c) 2026 x-dispatch contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package scenery

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/lyestarzalt/x-dispatch-sub002/apt"
)

// CachedSign is a taxi sign decoded through the sign cache: the interned
// segments for each face plus the stable keys a renderer can index its
// rasterized textures by. BackKey is empty for single-faced signs.
type CachedSign struct {
	FrontKey string
	Front    []apt.SignSegment
	BackKey  string
	Back     []apt.SignSegment
}

// SignCache interns decoded sign faces: distinct signs whose text decodes
// to the same segments at the same size share one entry, so a scenery set
// full of identical "A→" signs decodes (and renders) the face once.
type SignCache struct {
	faces *lru.Cache[string, []apt.SignSegment]
}

func NewSignCache(entries int) (*SignCache, error) {
	faces, err := lru.New[string, []apt.SignSegment](entries)
	if err != nil {
		return nil, err
	}
	return &SignCache{faces: faces}, nil
}

// Decode decodes the sign's mini-language text, interning each face.
func (c *SignCache) Decode(s apt.Sign) CachedSign {
	d := apt.DecodeSignText(s.Text)

	var cs CachedSign
	cs.FrontKey, cs.Front = c.intern(d.Front, s.Size)
	if len(d.Back) > 0 {
		cs.BackKey, cs.Back = c.intern(d.Back, s.Size)
	}
	return cs
}

func (c *SignCache) intern(segs []apt.SignSegment, size int) (string, []apt.SignSegment) {
	key := apt.EncodeSignKey(segs, size)
	if cached, ok := c.faces.Get(key); ok {
		return key, cached
	}
	c.faces.Add(key, segs)
	return key, segs
}

func (c *SignCache) Len() int { return c.faces.Len() }
