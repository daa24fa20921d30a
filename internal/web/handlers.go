package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/zombor/smart-pantry/internal/pantry"
	"github.com/zombor/smart-pantry/internal/recipe"
)

// maxUploadSize bounds receipt photos and imported pantry lists
const maxUploadSize = int64(50 << 20) // 50MB

// setCORSHeaders sets CORS headers on a response
func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
	w.Header().Set("Access-Control-Max-Age", "3600")
}

// corsError writes a plain-text error response with CORS headers set
func corsError(w http.ResponseWriter, message string, code int) {
	setCORSHeaders(w)
	http.Error(w, message, code)
}

// writeJSON encodes v as the response body
func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// jsonError writes {"error": message} with CORS headers set
func jsonError(w http.ResponseWriter, message string, code int) {
	setCORSHeaders(w)
	writeJSON(w, code, map[string]string{"error": message})
}

// handleIndex serves the HTML interface
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexHTML)
}

// handleStaticJS serves the JavaScript file
func (s *Server) handleStaticJS(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w)
	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	w.Write(appJS)
}

// handleListItems returns the session's pantry
func (s *Server) handleListItems(w http.ResponseWriter, r *http.Request, sess *Session) {
	writeJSON(w, http.StatusOK, s.service.Items(sess))
}

// handleAddItem adds a manually entered item
func (s *Server) handleAddItem(w http.ResponseWriter, r *http.Request, sess *Session) {
	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	item, err := s.service.AddItem(r.Context(), sess, req)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusCreated, item)
}

// handleReplaceItems stores a bulk edit of the pantry
func (s *Server) handleReplaceItems(w http.ResponseWriter, r *http.Request, sess *Session) {
	var items []pantry.Item
	if err := json.NewDecoder(r.Body).Decode(&items); err != nil {
		jsonError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, s.service.ReplaceItems(sess, items))
}

// handleRemoveItems removes items by name
func (s *Server) handleRemoveItems(w http.ResponseWriter, r *http.Request, sess *Session) {
	var req struct {
		Names []string `json:"names"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	removed := s.service.RemoveItems(sess, req.Names)
	writeJSON(w, http.StatusOK, map[string]int{"removed": removed})
}

// handleEstimate estimates an expiry date without storing anything
func (s *Server) handleEstimate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PurchaseDate string `json:"purchase_date"`
		FoodType     string `json:"food_type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.FoodType) == "" {
		jsonError(w, "food_type is required", http.StatusBadRequest)
		return
	}

	result := s.service.Estimate(r.Context(), req.PurchaseDate, req.FoodType)
	writeJSON(w, http.StatusOK, map[string]string{
		"expiry_date": result.String(),
		"kind":        result.Kind.String(),
	})
}

// handleExpiring returns the items expiring soon; ?days= overrides the horizon
func (s *Server) handleExpiring(w http.ResponseWriter, r *http.Request, sess *Session) {
	days := -1
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			jsonError(w, "days must be a non-negative integer", http.StatusBadRequest)
			return
		}
		days = parsed
	}

	writeJSON(w, http.StatusOK, s.service.Expiring(sess, days))
}

// handleCalendar returns the expiry calendar
func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request, sess *Session) {
	writeJSON(w, http.StatusOK, s.service.Calendar(sess))
}

// handleScanReceipt reads an uploaded receipt into a batch for review
func (s *Server) handleScanReceipt(w http.ResponseWriter, r *http.Request, sess *Session) {
	data, filename, contentType, ok := readUpload(w, r)
	if !ok {
		return
	}

	batch, err := s.service.ScanReceipt(r.Context(), sess, filename, data, contentType)
	if err != nil {
		slog.Error("Error scanning receipt", "filename", filename, "error", err)
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, batch)
}

// handleStagedBatch returns the receipt batch under review
func (s *Server) handleStagedBatch(w http.ResponseWriter, r *http.Request, sess *Session) {
	batch, err := s.service.StagedBatch(sess)
	if err != nil {
		jsonError(w, err.Error(), http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, batch)
}

// handleStagedImage returns the receipt image under review
func (s *Server) handleStagedImage(w http.ResponseWriter, r *http.Request, sess *Session) {
	data, contentType, err := s.service.StagedImage(sess)
	if err != nil {
		corsError(w, "File not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Write(data)
}

// handleConfirmReceipt commits the reviewed receipt items. An empty body
// commits the batch as extracted.
func (s *Server) handleConfirmReceipt(w http.ResponseWriter, r *http.Request, sess *Session) {
	var items []pantry.Item
	if r.ContentLength != 0 {
		var req struct {
			Items []pantry.Item `json:"items"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			jsonError(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		items = req.Items
	}

	confirmed, err := s.service.ConfirmReceipt(sess, items)
	if err != nil {
		jsonError(w, err.Error(), http.StatusConflict)
		return
	}

	writeJSON(w, http.StatusCreated, confirmed)
}

// handleDiscardReceipt drops the receipt batch under review
func (s *Server) handleDiscardReceipt(w http.ResponseWriter, r *http.Request, sess *Session) {
	if err := s.service.DiscardReceipt(sess); err != nil {
		jsonError(w, err.Error(), http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleImport appends an uploaded pantry list. It accepts a multipart
// "file" field or a raw JSON body.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request, sess *Session) {
	var body io.Reader = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		data, _, _, ok := readUpload(w, r)
		if !ok {
			return
		}
		body = bytes.NewReader(data)
	}

	items, err := s.service.ImportJSON(r.Context(), sess, body)
	if err != nil {
		slog.Error("Error importing pantry list", "error", err)
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusCreated, items)
}

// handleExport downloads the pantry as JSON
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request, sess *Session) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="pantry.json"`)
	if err := s.service.ExportJSON(sess, w); err != nil {
		slog.Error("Error exporting pantry", "error", err)
	}
}

// handleListSnapshots returns the saved snapshots
func (s *Server) handleListSnapshots(w http.ResponseWriter, r *http.Request) {
	snapshots, err := s.service.ListSnapshots()
	if err != nil {
		snapshotError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snapshots)
}

// handleSaveSnapshot saves the pantry under a name
func (s *Server) handleSaveSnapshot(w http.ResponseWriter, r *http.Request, sess *Session) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		jsonError(w, "name is required", http.StatusBadRequest)
		return
	}

	snapshot, err := s.service.SaveSnapshot(sess, req.Name)
	if err != nil {
		snapshotError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, snapshot)
}

// handleRestoreSnapshot replaces the pantry with a saved snapshot
func (s *Server) handleRestoreSnapshot(w http.ResponseWriter, r *http.Request, sess *Session) {
	items, err := s.service.RestoreSnapshot(sess, r.PathValue("name"))
	if err != nil {
		snapshotError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// handleDeleteSnapshot removes a saved snapshot
func (s *Server) handleDeleteSnapshot(w http.ResponseWriter, r *http.Request) {
	if err := s.service.DeleteSnapshot(r.PathValue("name")); err != nil {
		snapshotError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func snapshotError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, pantry.ErrSnapshotNotFound):
		jsonError(w, "Snapshot not found", http.StatusNotFound)
	case errors.Is(err, ErrArchiveDisabled):
		jsonError(w, err.Error(), http.StatusNotImplemented)
	default:
		slog.Error("Snapshot error", "error", err)
		jsonError(w, "Internal server error", http.StatusInternalServerError)
	}
}

// handleGetPreferences returns the recipe preferences and the form choices
func (s *Server) handleGetPreferences(w http.ResponseWriter, r *http.Request, sess *Session) {
	writeJSON(w, http.StatusOK, map[string]any{
		"preferences": sess.Preferences,
		"cuisines":    recipe.Cuisines,
		"meal_types":  recipe.MealTypes,
	})
}

// handleSetPreferences stores the recipe preferences
func (s *Server) handleSetPreferences(w http.ResponseWriter, r *http.Request, sess *Session) {
	var prefs recipe.Preferences
	if err := json.NewDecoder(r.Body).Decode(&prefs); err != nil {
		jsonError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, s.service.SetPreferences(sess, prefs))
}

// handleChatHistory returns the conversation so far
func (s *Server) handleChatHistory(w http.ResponseWriter, r *http.Request, sess *Session) {
	writeJSON(w, http.StatusOK, map[string]any{
		"greeting": recipe.Greeting,
		"messages": sess.Chat.History(),
		"recipe":   sess.Chat.LatestRecipe(),
	})
}

// handleChat sends a message to the recipe assistant
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request, sess *Session) {
	var req struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		jsonError(w, "message is required", http.StatusBadRequest)
		return
	}

	reply, err := s.service.Chat(r.Context(), sess, req.Message)
	if err != nil {
		jsonError(w, fmt.Sprintf("Error: %v", err), http.StatusBadGateway)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"reply": reply})
}

// handleResetChat starts a new conversation
func (s *Server) handleResetChat(w http.ResponseWriter, r *http.Request, sess *Session) {
	s.service.ResetChat(sess)
	w.WriteHeader(http.StatusNoContent)
}

// handleConsumeIngredients removes the latest recipe's ingredients from the pantry
func (s *Server) handleConsumeIngredients(w http.ResponseWriter, r *http.Request, sess *Session) {
	removed, err := s.service.ConsumeIngredients(sess)
	if err != nil {
		jsonError(w, err.Error(), http.StatusConflict)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"removed": removed})
}

// handleDownloadRecipe downloads the latest recipe as a text file
func (s *Server) handleDownloadRecipe(w http.ResponseWriter, r *http.Request, sess *Session) {
	filename, text, err := s.service.RecipeText(sess)
	if err != nil {
		jsonError(w, err.Error(), http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	io.WriteString(w, text)
}

// readUpload reads the multipart "file" field. On failure it writes the
// error response and returns ok == false.
func readUpload(w http.ResponseWriter, r *http.Request) (data []byte, filename string, contentType string, ok bool) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		slog.Error("Error parsing multipart form", "error", err)
		errorMsg := "Error parsing form"
		if err.Error() == "http: request body too large" {
			errorMsg = "File is too large. Maximum size is 50MB. Please compress or resize your image."
		}
		jsonError(w, errorMsg, http.StatusBadRequest)
		return nil, "", "", false
	}

	f, header, err := r.FormFile("file")
	if err != nil {
		slog.Error("Error getting file from form", "error", err)
		jsonError(w, "No file was selected. Please choose a file to upload.", http.StatusBadRequest)
		return nil, "", "", false
	}
	defer f.Close()

	if header.Size > maxUploadSize {
		jsonError(w, "File is too large. Maximum size is 50MB. Please compress or resize your image.", http.StatusBadRequest)
		return nil, "", "", false
	}

	data, err = io.ReadAll(f)
	if err != nil {
		slog.Error("Error reading file data", "error", err, "filename", header.Filename)
		jsonError(w, "Error reading file. Please try again.", http.StatusInternalServerError)
		return nil, "", "", false
	}

	return data, header.Filename, uploadContentType(header.Header.Get("Content-Type"), header.Filename), true
}

// uploadContentType picks the MIME type of an upload, falling back to the
// file extension when the browser sent none
func uploadContentType(declared string, filename string) string {
	contentType := strings.ToLower(strings.TrimSpace(declared))
	if contentType != "" && contentType != "application/octet-stream" {
		return contentType
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".pdf":
		return "application/pdf"
	case ".heic":
		return "image/heic"
	case ".heif":
		return "image/heif"
	case ".json":
		return "application/json"
	default:
		return "application/octet-stream"
	}
}
