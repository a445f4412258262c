// Package models defines the records held by the offline data cache.
package models

import "time"

// User is the signed-in account. A nil *User means signed out.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

type Locale string

const (
	LocaleEn Locale = "en"
	LocaleRu Locale = "ru"
)

// Settings are UI preferences. They only change through Merge.
type Settings struct {
	Theme         Theme  `json:"theme"`
	Locale        Locale `json:"locale"`
	GeneralFolder bool   `json:"generalFolder"`
}

func DefaultSettings() Settings {
	return Settings{Theme: ThemeLight, Locale: LocaleEn, GeneralFolder: true}
}

// SettingsPatch is a partial update; nil fields are left untouched.
type SettingsPatch struct {
	Theme         *Theme  `json:"theme,omitempty"`
	Locale        *Locale `json:"locale,omitempty"`
	GeneralFolder *bool   `json:"generalFolder,omitempty"`
}

func (s Settings) Merge(p SettingsPatch) Settings {
	if p.Theme != nil {
		s.Theme = *p.Theme
	}
	if p.Locale != nil {
		s.Locale = *p.Locale
	}
	if p.GeneralFolder != nil {
		s.GeneralFolder = *p.GeneralFolder
	}
	return s
}

type Folder struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ParentID string `json:"parentId,omitempty"`
}

// Message is one item of a folder. Collections keep messages newest first.
type Message struct {
	ID       string    `json:"id"`
	FolderID string    `json:"folderId"`
	From     string    `json:"from,omitempty"`
	Subject  string    `json:"subject"`
	Text     string    `json:"text,omitempty"`
	Date     time.Time `json:"date"`
	FileIDs  []string  `json:"fileIds,omitempty"`
}

// Meta is an opaque bootstrap record owned by the application.
type Meta map[string]any

type (
	Folders         = Ordered[Folder]
	FolderMessages  = Ordered[Message]
	FoldersMessages = Ordered[FolderMessages]
)

// UploadProgress records the last chunk acknowledged for a partial upload.
type UploadProgress struct {
	LastUploadedPart int `json:"lastUploadedPart"`
	TotalParts       int `json:"totalParts"`
}

func (p UploadProgress) Complete() bool {
	return p.LastUploadedPart == p.TotalParts-1
}

// UploadState distinguishes a fresh upload from a finished one within a
// process lifetime.
type UploadState int

const (
	UploadNotStarted UploadState = iota
	UploadInProgress
	UploadCompleted
)

func (s UploadState) String() string {
	switch s {
	case UploadInProgress:
		return "in-progress"
	case UploadCompleted:
		return "completed"
	default:
		return "not-started"
	}
}
