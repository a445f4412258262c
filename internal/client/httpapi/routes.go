package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/dmitrijs2005/gophcache/internal/client/models"
)

const maxBody = 64 << 20

func newUploadID() string { return uuid.NewString() }

func (a *API) routes(r *mux.Router) {
	api := r.PathPrefix("/api/").Subrouter()
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		a.writeJSON(w, r, map[string]bool{"ok": true}, http.StatusOK)
	}).Methods("GET")

	api.HandleFunc("/user", a.getUser).Methods("GET")
	api.HandleFunc("/user", a.putUser).Methods("PUT")
	api.HandleFunc("/user", a.resetUser).Methods("DELETE")

	api.HandleFunc("/meta", a.getMeta).Methods("GET")
	api.HandleFunc("/meta", a.putMeta).Methods("PUT")
	api.HandleFunc("/meta", a.resetMeta).Methods("DELETE")

	api.HandleFunc("/settings", a.getSettings).Methods("GET")
	api.HandleFunc("/settings", a.putSettings).Methods("PUT")
	api.HandleFunc("/settings", a.patchSettings).Methods("PATCH")

	api.HandleFunc("/folders", a.getFolders).Methods("GET")
	api.HandleFunc("/folders", a.putFolders).Methods("PUT")
	api.HandleFunc("/folders", a.resetFolders).Methods("DELETE")

	api.HandleFunc("/folders/{id}/messages", a.getFolderMessages).Methods("GET")
	api.HandleFunc("/folders/{id}/messages", a.putFolderMessages).Methods("PUT")
	api.HandleFunc("/folders/{id}/messages", a.resetFolderMessages).Methods("DELETE")

	api.HandleFunc("/messages", a.getFoldersMessages).Methods("GET")
	api.HandleFunc("/messages", a.resetFoldersMessages).Methods("DELETE")

	api.HandleFunc("/queries/{name}", a.getQueryTime).Methods("GET")
	api.HandleFunc("/queries/{name}", a.putQueryTime).Methods("PUT")

	api.HandleFunc("/uploads", a.newUpload).Methods("POST")
	api.HandleFunc("/uploads/{id}", a.getUpload).Methods("GET")
	api.HandleFunc("/uploads/{id}", a.putUpload).Methods("PUT").Queries("part", "{part}", "total", "{total}")

	api.HandleFunc("/files/{id}", a.getFile).Methods("GET")
	api.HandleFunc("/files/{id}", a.removeFile).Methods("DELETE")

	api.HandleFunc("/session/reset", a.resetSession).Methods("POST")
}

func (a *API) getUser(w http.ResponseWriter, r *http.Request) {
	a.writeJSON(w, r, a.cache.GetUser(r.Context()), http.StatusOK)
}

func (a *API) putUser(w http.ResponseWriter, r *http.Request) {
	var u *models.User
	if !a.decode(w, r, &u) {
		return
	}
	a.cache.SetUser(r.Context(), u)
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) resetUser(w http.ResponseWriter, r *http.Request) {
	a.cache.ResetUser(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) getMeta(w http.ResponseWriter, r *http.Request) {
	a.writeJSON(w, r, a.cache.GetMeta(r.Context(), nil), http.StatusOK)
}

func (a *API) putMeta(w http.ResponseWriter, r *http.Request) {
	var m models.Meta
	if !a.decode(w, r, &m) {
		return
	}
	a.cache.SetMeta(r.Context(), m)
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) resetMeta(w http.ResponseWriter, r *http.Request) {
	a.cache.ResetMeta(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) getSettings(w http.ResponseWriter, r *http.Request) {
	a.writeJSON(w, r, a.cache.GetSettings(r.Context()), http.StatusOK)
}

func (a *API) putSettings(w http.ResponseWriter, r *http.Request) {
	var s models.Settings
	if !a.decode(w, r, &s) {
		return
	}
	a.cache.SetSettings(r.Context(), s)
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) patchSettings(w http.ResponseWriter, r *http.Request) {
	var p models.SettingsPatch
	if !a.decode(w, r, &p) {
		return
	}
	a.writeJSON(w, r, a.cache.MergeSettings(r.Context(), p), http.StatusOK)
}

func (a *API) getFolders(w http.ResponseWriter, r *http.Request) {
	a.writeJSON(w, r, a.cache.GetFolders(r.Context()), http.StatusOK)
}

func (a *API) putFolders(w http.ResponseWriter, r *http.Request) {
	var f models.Folders
	if !a.decode(w, r, &f) {
		return
	}
	a.cache.SetFolders(r.Context(), f)
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) resetFolders(w http.ResponseWriter, r *http.Request) {
	a.cache.ResetFolders(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) getFolderMessages(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	a.writeJSON(w, r, a.cache.GetFolderMessages(r.Context(), id), http.StatusOK)
}

func (a *API) putFolderMessages(w http.ResponseWriter, r *http.Request) {
	var m models.FolderMessages
	if !a.decode(w, r, &m) {
		return
	}
	a.cache.SetFolderMessages(r.Context(), mux.Vars(r)["id"], m)
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) resetFolderMessages(w http.ResponseWriter, r *http.Request) {
	a.cache.ResetFolderMessages(r.Context(), mux.Vars(r)["id"])
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) getFoldersMessages(w http.ResponseWriter, r *http.Request) {
	a.writeJSON(w, r, a.cache.GetFoldersMessages(r.Context()), http.StatusOK)
}

func (a *API) resetFoldersMessages(w http.ResponseWriter, r *http.Request) {
	a.cache.ResetFoldersMessages(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

type queryTimeResponse struct {
	Name string `json:"name"`
	Time int64  `json:"time"`
}

func (a *API) getQueryTime(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	a.writeJSON(w, r, queryTimeResponse{Name: name, Time: a.cache.GetQueryTime(r.Context(), name)}, http.StatusOK)
}

func (a *API) putQueryTime(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	a.cache.SetQueryTime(r.Context(), name)
	a.writeJSON(w, r, queryTimeResponse{Name: name, Time: a.cache.GetQueryTime(r.Context(), name)}, http.StatusOK)
}

type uploadResponse struct {
	FileID   string                 `json:"fileId"`
	Status   string                 `json:"status"`
	Progress *models.UploadProgress `json:"progress,omitempty"`
}

func (a *API) newUpload(w http.ResponseWriter, r *http.Request) {
	a.writeJSON(w, r, uploadResponse{FileID: a.newID(), Status: models.UploadNotStarted.String()}, http.StatusCreated)
}

func (a *API) uploadState(r *http.Request, id string) uploadResponse {
	resp := uploadResponse{FileID: id, Status: a.cache.UploadStatus(r.Context(), id).String()}
	if p, ok := a.cache.GetUploadingFile(r.Context(), id); ok {
		resp.Progress = &p
	}
	return resp
}

func (a *API) getUpload(w http.ResponseWriter, r *http.Request) {
	a.writeJSON(w, r, a.uploadState(r, mux.Vars(r)["id"]), http.StatusOK)
}

func (a *API) putUpload(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	part, err1 := strconv.Atoi(vars["part"])
	total, err2 := strconv.Atoi(vars["total"])
	if err1 != nil || err2 != nil || total <= 0 || part < 0 || part >= total {
		http.Error(w, "invalid part or total", http.StatusBadRequest)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBody))
	if err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	id := vars["id"]
	a.cache.SetUploadingFile(r.Context(), id, int64(len(body)), body, part, total)
	a.writeJSON(w, r, a.uploadState(r, id), http.StatusOK)
}

func (a *API) getFile(w http.ResponseWriter, r *http.Request) {
	b := a.cache.GetFile(r.Context(), mux.Vars(r)["id"])
	if b == nil {
		http.Error(w, "file not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Length", strconv.Itoa(len(b)))
	if _, err := w.Write(b); err != nil {
		a.log.Error(r.Context(), "failed to write response", "error", err)
	}
}

func (a *API) removeFile(w http.ResponseWriter, r *http.Request) {
	a.cache.RemoveFile(r.Context(), mux.Vars(r)["id"])
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) resetSession(w http.ResponseWriter, r *http.Request) {
	a.cache.ResetSession(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody)).Decode(v); err != nil {
		a.log.Warn(r.Context(), "failed to decode request", "path", r.URL.Path, "error", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

func (a *API) writeJSON(w http.ResponseWriter, r *http.Request, data any, status int) {
	b, err := json.Marshal(data)
	if err != nil {
		a.log.Error(r.Context(), "failed to marshal JSON", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(b); err != nil {
		a.log.Error(r.Context(), "failed to write response", "error", err)
	}
}
