package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"

	"github.com/dmitrijs2005/smartdrive/internal/common"
	"github.com/dmitrijs2005/smartdrive/internal/server/models"
	"github.com/gorilla/mux"
)

const maxJSONBodySize = 1 << 20

const missingCredentialsMsg = "username and password are required"

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

type uploadResponse struct {
	Message string `json:"message"`
	FileURL string `json:"file_url"`
}

type filesResponse struct {
	Files []*models.FileRecord `json:"files"`
}

type shareResponse struct {
	ShareURL  string `json:"share_url"`
	ExpiresIn int64  `json:"expires_in"`
}

func (s *HTTPServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Service: ServiceName})
}

func decodeCredentials(w http.ResponseWriter, r *http.Request) (*credentialsRequest, bool) {
	var req credentialsRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBodySize)).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return nil, false
	}
	return &req, true
}

func (s *HTTPServer) handleRegister(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeCredentials(w, r)
	if !ok {
		return
	}

	if err := s.users.Register(r.Context(), req.Username, req.Password); err != nil {
		if errors.Is(err, common.ErrInvalidUsername) {
			writeMessage(w, http.StatusBadRequest, err.Error())
			return
		}
		if errors.Is(err, common.ErrInvalidInput) {
			writeMessage(w, http.StatusBadRequest, missingCredentialsMsg)
			return
		}
		if !errors.Is(err, common.ErrAlreadyExists) {
			s.log(r).Error(r.Context(), "register failed", "error", err)
		}
		respondError(w, err, "")
		return
	}

	s.log(r).Info(r.Context(), "Registered", "username", req.Username)
	writeMessage(w, http.StatusCreated, "registered")
}

func (s *HTTPServer) handleLogin(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeCredentials(w, r)
	if !ok {
		return
	}

	token, err := s.users.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrInvalidInput) {
			writeMessage(w, http.StatusBadRequest, missingCredentialsMsg)
			return
		}
		if errors.Is(err, common.ErrInvalidCredentials) {
			s.log(r).Warn(r.Context(), "login rejected")
		} else {
			s.log(r).Error(r.Context(), "login failed", "error", err)
		}
		respondError(w, err, "")
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{AccessToken: token})
}

var (
	errNoFilePart     = errors.New("no file part")
	errNoSelectedFile = errors.New("no selected file")
)

// uploadPart is the "file" part of an upload form, read in full.
type uploadPart struct {
	fileName    string
	contentType string
	data        []byte
}

// readUploadPart scans the multipart body for the "file" field. The file name
// is taken verbatim from the Content-Disposition header, directories included;
// multipart.Part.FileName would reduce it to its base name.
func readUploadPart(r *http.Request) (*uploadPart, error) {
	mr, err := r.MultipartReader()
	if err != nil {
		return nil, errNoFilePart
	}

	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			return nil, errNoFilePart
		}
		if err != nil {
			return nil, err
		}

		_, params, err := mime.ParseMediaType(part.Header.Get("Content-Disposition"))
		if err != nil || params["name"] != "file" {
			_ = part.Close()
			continue
		}

		fileName := params["filename"]
		if fileName == "" {
			_ = part.Close()
			return nil, errNoSelectedFile
		}

		data, err := io.ReadAll(part)
		_ = part.Close()
		if err != nil {
			return nil, err
		}
		return &uploadPart{fileName: fileName, contentType: part.Header.Get("Content-Type"), data: data}, nil
	}
}

func (s *HTTPServer) handleUpload(w http.ResponseWriter, r *http.Request, owner string) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadSize)

	up, err := readUploadPart(r)
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			writeMessage(w, http.StatusRequestEntityTooLarge, "file too large")
		case errors.Is(err, errNoSelectedFile):
			writeMessage(w, http.StatusBadRequest, errNoSelectedFile.Error())
		default:
			writeMessage(w, http.StatusBadRequest, errNoFilePart.Error())
		}
		return
	}

	rec, err := s.files.Upload(r.Context(), owner, up.fileName, bytes.NewReader(up.data), int64(len(up.data)), up.contentType)
	if err != nil {
		respondError(w, err, "upload failed")
		return
	}

	writeJSON(w, http.StatusOK, uploadResponse{Message: "uploaded", FileURL: rec.PublicURL})
}

func (s *HTTPServer) handleList(w http.ResponseWriter, r *http.Request, owner string) {
	recs, err := s.files.List(r.Context(), owner)
	if err != nil {
		respondError(w, err, "list failed")
		return
	}
	writeJSON(w, http.StatusOK, filesResponse{Files: recs})
}

func (s *HTTPServer) handleDelete(w http.ResponseWriter, r *http.Request, owner string) {
	name := mux.Vars(r)["filename"]
	if err := s.files.Delete(r.Context(), owner, name); err != nil {
		respondError(w, err, "delete failed")
		return
	}
	writeMessage(w, http.StatusOK, "deleted")
}

func (s *HTTPServer) handleShare(w http.ResponseWriter, r *http.Request, owner string) {
	name := mux.Vars(r)["filename"]
	link, err := s.files.Share(r.Context(), owner, name)
	if err != nil {
		respondError(w, err, "could not generate link")
		return
	}
	writeJSON(w, http.StatusOK, shareResponse{ShareURL: link.URL, ExpiresIn: int64(link.ExpiresIn.Seconds())})
}
