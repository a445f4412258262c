package datacache

import "github.com/dmitrijs2005/gophcache/internal/client/models"

// Concept is a domain record kind stored by the cache.
type Concept int

const (
	ConceptQueryTime Concept = iota
	ConceptMeta
	ConceptUser
	ConceptSettings
	ConceptFolders
	ConceptFolderMessages
	ConceptUploadProgress
	ConceptFile
)

// Fallback is the rule for the value a getter returns when nothing is
// cached or stored.
type Fallback int

const (
	FallbackZero Fallback = iota
	FallbackNull
	FallbackEmpty
	FallbackDefaults
	FallbackProvided
	FallbackAbsent
)

type policy struct {
	kind  Fallback
	value func() any
}

var policies = map[Concept]policy{
	ConceptQueryTime:      {FallbackZero, func() any { return int64(0) }},
	ConceptMeta:           {FallbackProvided, nil},
	ConceptUser:           {FallbackNull, func() any { return (*models.User)(nil) }},
	ConceptSettings:       {FallbackDefaults, func() any { return models.DefaultSettings() }},
	ConceptFolders:        {FallbackEmpty, func() any { return models.NewOrdered[models.Folder]() }},
	ConceptFolderMessages: {FallbackEmpty, func() any { return models.NewOrdered[models.Message]() }},
	ConceptUploadProgress: {FallbackAbsent, func() any { return (*models.UploadProgress)(nil) }},
	ConceptFile:           {FallbackNull, func() any { return []byte(nil) }},
}

// PolicyFor reports the fallback rule of a concept.
func PolicyFor(c Concept) Fallback {
	return policies[c].kind
}

// fallbackFor builds the fallback of c as a T. provided is used by
// FallbackProvided concepts and ignored otherwise.
func fallbackFor[T any](c Concept, provided T) func() T {
	p := policies[c]
	return func() T {
		if p.kind == FallbackProvided || p.value == nil {
			return provided
		}
		v, _ := p.value().(T)
		return v
	}
}

// emptyOf returns the value a reset of c writes.
func emptyOf[T any](c Concept) T {
	var zero T
	return fallbackFor(c, zero)()
}
