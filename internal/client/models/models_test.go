package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrdered_SetKeepsInsertionOrderAndUniqueIDs(t *testing.T) {
	o := NewOrdered[Folder]()
	o.Set("inbox", Folder{ID: "inbox", Name: "Inbox"})
	o.Set("sent", Folder{ID: "sent", Name: "Sent"})
	o.Set("inbox", Folder{ID: "inbox", Name: "Inbox (renamed)"})

	assert.Equal(t, []string{"inbox", "sent"}, o.Keys())
	assert.Equal(t, 2, o.Len())

	f, ok := o.Get("inbox")
	require.True(t, ok)
	assert.Equal(t, "Inbox (renamed)", f.Name)
}

func TestOrdered_ZeroValueIsUsable(t *testing.T) {
	var o Ordered[int]
	assert.Equal(t, 0, o.Len())
	_, ok := o.Get("x")
	assert.False(t, ok)

	o.Set("x", 1)
	v, _ := o.Get("x")
	assert.Equal(t, 1, v)
}

func TestOrdered_Head(t *testing.T) {
	o := NewOrdered[int]()
	for i, k := range []string{"a", "b", "c", "d"} {
		o.Set(k, i)
	}

	h := o.Head(2)
	assert.Equal(t, []string{"a", "b"}, h.Keys())
	assert.Equal(t, 4, o.Len(), "Head must not modify the source")

	assert.Equal(t, 4, o.Head(10).Len())
	assert.Equal(t, 0, o.Head(0).Len())
}

func TestOrdered_CloneIsIndependent(t *testing.T) {
	o := NewOrdered[int]()
	o.Set("a", 1)

	c := o.Clone()
	c.Set("a", 2)
	c.Set("b", 3)

	v, _ := o.Get("a")
	assert.Equal(t, 1, v)
	assert.Equal(t, []string{"a"}, o.Keys())
	assert.Equal(t, []string{"a", "b"}, c.Keys())
}

func TestOrdered_All(t *testing.T) {
	o := NewOrdered[int]()
	o.Set("a", 1)
	o.Set("b", 2)
	o.Set("c", 3)

	var got []string
	for k := range o.All() {
		got = append(got, k)
		if k == "b" {
			break
		}
	}
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestOrdered_JSONPreservesOrder(t *testing.T) {
	o := NewOrdered[Message]()
	d := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	o.Set("m2", Message{ID: "m2", FolderID: "inbox", Subject: "newer", Date: d.Add(time.Hour)})
	o.Set("m1", Message{ID: "m1", FolderID: "inbox", Subject: "older", Date: d})

	b, err := json.Marshal(o)
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"key":"m2","value":{"id":"m2","folderId":"inbox","subject":"newer","date":"2024-05-01T11:00:00Z"}},
		{"key":"m1","value":{"id":"m1","folderId":"inbox","subject":"older","date":"2024-05-01T10:00:00Z"}}
	]`, string(b))

	var back FolderMessages
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, o, back)
}

func TestOrdered_EmptyJSON(t *testing.T) {
	b, err := json.Marshal(NewOrdered[Folder]())
	require.NoError(t, err)
	assert.Equal(t, "[]", string(b))

	var back Folders
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, NewOrdered[Folder](), back)

	assert.Error(t, json.Unmarshal([]byte(`{"a":1}`), &back))
}

func TestSettings_Merge(t *testing.T) {
	dark := ThemeDark
	off := false

	s := DefaultSettings().Merge(SettingsPatch{Theme: &dark})
	assert.Equal(t, Settings{Theme: ThemeDark, Locale: LocaleEn, GeneralFolder: true}, s)

	s = s.Merge(SettingsPatch{GeneralFolder: &off})
	assert.Equal(t, Settings{Theme: ThemeDark, Locale: LocaleEn, GeneralFolder: false}, s)

	assert.Equal(t, s, s.Merge(SettingsPatch{}))
}

func TestUploadProgress_Complete(t *testing.T) {
	assert.False(t, UploadProgress{LastUploadedPart: 0, TotalParts: 3}.Complete())
	assert.True(t, UploadProgress{LastUploadedPart: 2, TotalParts: 3}.Complete())
	assert.True(t, UploadProgress{LastUploadedPart: 0, TotalParts: 1}.Complete())
}

func TestUploadState_String(t *testing.T) {
	assert.Equal(t, "not-started", UploadNotStarted.String())
	assert.Equal(t, "in-progress", UploadInProgress.String())
	assert.Equal(t, "completed", UploadCompleted.String())
}
