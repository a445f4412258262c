package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/dmitrijs2005/gophcache/internal/client/models"
	"github.com/dmitrijs2005/gophcache/internal/client/uploads"
)

var errNotLoggedIn = errors.New("not logged in")

func (a *App) requireUser(ctx context.Context) error {
	if a.cache.GetUser(ctx) == nil {
		return errNotLoggedIn
	}
	return nil
}

func (a *App) Login(ctx context.Context, args []string) error {
	u := &models.User{ID: a.newID(), Name: args[0]}
	if len(args) > 1 {
		u.Email = args[1]
	}
	a.cache.SetUser(ctx, u)
	a.cache.SetMeta(ctx, models.Meta{"loginAt": a.cache.Now().UTC().Format(time.RFC3339)})
	a.cache.SetQueryTime(ctx, "login")
	printlnFn("Logged in as", u.Name)
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	u := a.cache.GetUser(ctx)
	if u == nil {
		printlnFn("Not logged in")
		return nil
	}
	line := fmt.Sprintf("%s (id %s)", u.Name, u.ID)
	if u.Email != "" {
		line += " <" + u.Email + ">"
	}
	if at, ok := a.cache.GetMeta(ctx, nil)["loginAt"].(string); ok {
		line += ", since " + at
	}
	printlnFn(line)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.cache.ResetSession(ctx)
	printlnFn("Logged out")
	return nil
}

func (a *App) printSettings(s models.Settings) {
	general := "off"
	if s.GeneralFolder {
		general = "on"
	}
	printlnFn(fmt.Sprintf("theme=%s locale=%s generalfolder=%s", s.Theme, s.Locale, general))
}

func (a *App) Settings(ctx context.Context) error {
	a.printSettings(a.cache.GetSettings(ctx))
	return nil
}

func (a *App) Theme(ctx context.Context, args []string) error {
	t := models.Theme(args[0])
	if t != models.ThemeLight && t != models.ThemeDark {
		return fmt.Errorf("unknown theme %q", args[0])
	}
	a.printSettings(a.cache.MergeSettings(ctx, models.SettingsPatch{Theme: &t}))
	return nil
}

func (a *App) Locale(ctx context.Context, args []string) error {
	l := models.Locale(args[0])
	if l != models.LocaleEn && l != models.LocaleRu {
		return fmt.Errorf("unknown locale %q", args[0])
	}
	a.printSettings(a.cache.MergeSettings(ctx, models.SettingsPatch{Locale: &l}))
	return nil
}

func (a *App) GeneralFolder(ctx context.Context, args []string) error {
	var on bool
	switch args[0] {
	case "on":
		on = true
	case "off":
	default:
		return fmt.Errorf("expected on or off, got %q", args[0])
	}
	a.printSettings(a.cache.MergeSettings(ctx, models.SettingsPatch{GeneralFolder: &on}))
	return nil
}

func (a *App) Folders(ctx context.Context) error {
	if err := a.requireUser(ctx); err != nil {
		return err
	}
	folders := a.cache.GetFolders(ctx)
	if folders.Len() == 0 {
		printlnFn("No folders")
		return nil
	}
	for id, f := range folders.All() {
		printlnFn(fmt.Sprintf("%-12s %s", id, f.Name))
	}
	return nil
}

func (a *App) AddFolder(ctx context.Context, args []string) error {
	if err := a.requireUser(ctx); err != nil {
		return err
	}
	folders := a.cache.GetFolders(ctx).Clone()
	id := args[0]
	folders.Set(id, models.Folder{ID: id, Name: strings.Join(args[1:], " ")})
	a.cache.SetFolders(ctx, folders)
	a.cache.SetQueryTime(ctx, "folders")
	printlnFn("Folder saved:", id)
	return nil
}

func (a *App) Messages(ctx context.Context, args []string) error {
	if err := a.requireUser(ctx); err != nil {
		return err
	}
	msgs := a.cache.GetFolderMessages(ctx, args[0])
	if msgs.Len() == 0 {
		printlnFn("No messages")
		return nil
	}
	for _, m := range msgs.All() {
		printlnFn(fmt.Sprintf("%s  %-30s  %s", m.ID[:min(8, len(m.ID))], m.Subject, humanize.Time(m.Date)))
	}
	return nil
}

// AddMessage prepends a message so the folder stays newest first.
func (a *App) AddMessage(ctx context.Context, args []string) error {
	if err := a.requireUser(ctx); err != nil {
		return err
	}
	folderID := args[0]
	if _, ok := a.cache.GetFolders(ctx).Get(folderID); !ok {
		return fmt.Errorf("unknown folder %q", folderID)
	}

	text, err := GetMultiline(a.scanner, "Message text", a.out)
	if err != nil {
		return err
	}

	m := models.Message{
		ID:       a.newID(),
		FolderID: folderID,
		From:     a.cache.GetUser(ctx).Name,
		Subject:  strings.Join(args[1:], " "),
		Text:     text,
		Date:     a.cache.Now().UTC(),
	}

	next := models.NewOrdered[models.Message]()
	next.Set(m.ID, m)
	for id, old := range a.cache.GetFolderMessages(ctx, folderID).All() {
		next.Set(id, old)
	}
	a.cache.SetFolderMessages(ctx, folderID, next)
	a.cache.SetQueryTime(ctx, "messages-"+folderID)
	printlnFn("Message saved:", m.ID)
	return nil
}

func (a *App) All(ctx context.Context) error {
	if err := a.requireUser(ctx); err != nil {
		return err
	}
	all := a.cache.GetFoldersMessages(ctx)
	if all.Len() == 0 {
		printlnFn("No folders")
		return nil
	}
	for id, msgs := range all.All() {
		printlnFn(fmt.Sprintf("%-12s %s", id, humanize.Comma(int64(msgs.Len()))+" message(s)"))
	}
	return nil
}

func (a *App) Upload(ctx context.Context, args []string) error {
	data, err := a.readFile(args[0])
	if err != nil {
		return err
	}
	id := a.newID()
	printlnFn(fmt.Sprintf("Uploading %s (%s) as %s", filepath.Base(args[0]), humanize.Bytes(uint64(len(data))), id))

	if err := a.uploader.Start(ctx, id, data); err != nil {
		return fmt.Errorf("upload interrupted, run 'resume %s': %w", id, err)
	}
	printlnFn("Upload complete:", id)
	return nil
}

func (a *App) Resume(ctx context.Context, args []string) error {
	err := a.uploader.Resume(ctx, args[0])
	if errors.Is(err, uploads.ErrNothingToResume) {
		printlnFn("Nothing to resume for", args[0])
		return nil
	}
	if err != nil {
		return err
	}
	printlnFn("Upload complete:", args[0])
	return nil
}

func (a *App) Progress(ctx context.Context, args []string) error {
	id := args[0]
	state := a.cache.UploadStatus(ctx, id)
	line := fmt.Sprintf("%s: %s", id, state)
	if p, ok := a.cache.GetUploadingFile(ctx, id); ok {
		line += fmt.Sprintf(", part %d of %d", p.LastUploadedPart+1, p.TotalParts)
	}
	if b := a.cache.GetFile(ctx, id); b != nil {
		line += ", " + humanize.Bytes(uint64(len(b))) + " cached"
	}
	printlnFn(line)
	return nil
}

func (a *App) RemoveFile(ctx context.Context, args []string) error {
	a.cache.RemoveFile(ctx, args[0])
	printlnFn("File removed:", args[0])
	return nil
}

func (a *App) Touch(ctx context.Context, args []string) error {
	name := args[0]
	prev := a.cache.GetQueryTime(ctx, name)
	a.cache.SetQueryTime(ctx, name)

	if prev == 0 {
		printlnFn(name, "refreshed for the first time")
		return nil
	}
	printlnFn(name, "refreshed, previous refresh", humanize.Time(time.UnixMilli(prev)))
	return nil
}
