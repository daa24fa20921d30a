package web

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/zombor/smart-pantry/internal/pantry"
	"github.com/zombor/smart-pantry/internal/recipe"
)

var (
	// ErrNoStagedBatch is returned when there is no receipt under review
	ErrNoStagedBatch = errors.New("no receipt items awaiting review")
	// ErrNoRecipe is returned before the assistant has suggested anything
	ErrNoRecipe = errors.New("no recipe suggested yet")
	// ErrArchiveDisabled is returned for snapshot calls without an archive
	ErrArchiveDisabled = errors.New("snapshot archive is not configured")
	// ErrNameRequired is returned when an item has no name
	ErrNameRequired = errors.New("item name is required")
)

// AddItemRequest is a manually entered item. When ExpiryDate is empty and
// FoodType is set, the expiry is estimated from FoodType.
type AddItemRequest struct {
	Name         string `json:"name"`
	PurchaseDate string `json:"purchase_date"`
	ExpiryDate   string `json:"expiry_date"`
	FoodType     string `json:"food_type"`
	Quantity     int    `json:"quantity"`
	HighPriority bool   `json:"high_priority"`
}

// Service runs pantry interactions for sessions
type Service struct {
	sessions    *Sessions
	estimator   *pantry.Estimator
	importer    *pantry.Importer
	archive     pantry.Archive
	storage     Storage
	idGenerator pantry.IDGenerator
	clock       pantry.Clock
	horizon     int
}

// ServiceConfig carries the collaborators of a Service. Archive may be nil.
type ServiceConfig struct {
	Sessions    *Sessions
	Estimator   *pantry.Estimator
	Importer    *pantry.Importer
	Archive     pantry.Archive
	Storage     Storage
	IDGenerator pantry.IDGenerator
	Clock       pantry.Clock
	// Horizon is the default "expiring soon" window in days
	Horizon int
}

// NewService creates a Service, filling unset clock, IDs and horizon with defaults
func NewService(cfg ServiceConfig) *Service {
	if cfg.Clock == nil {
		cfg.Clock = pantry.SystemClock{}
	}
	if cfg.IDGenerator == nil {
		cfg.IDGenerator = pantry.UUIDGenerator{}
	}
	if cfg.Horizon <= 0 {
		cfg.Horizon = 3
	}
	return &Service{
		sessions:    cfg.Sessions,
		estimator:   cfg.Estimator,
		importer:    cfg.Importer,
		archive:     cfg.Archive,
		storage:     cfg.Storage,
		idGenerator: cfg.IDGenerator,
		clock:       cfg.Clock,
		horizon:     cfg.Horizon,
	}
}

// Session returns the session for id, creating one when needed, and drops
// idle sessions along with their staged receipt images
func (s *Service) Session(id string) (*Session, bool) {
	for _, pruned := range s.sessions.Prune() {
		pruned.Lock()
		s.clearStaged(pruned)
		pruned.Unlock()
	}
	return s.sessions.Get(id)
}

// Horizon returns the default expiring-soon window
func (s *Service) Horizon() int {
	return s.horizon
}

// Items returns the session's pantry
func (s *Service) Items(sess *Session) []pantry.Item {
	return sess.Store.All()
}

// AddItem adds a manually entered item
func (s *Service) AddItem(ctx context.Context, sess *Session, req AddItemRequest) (pantry.Item, error) {
	item, ok := pantry.NewItem(req.Name, req.PurchaseDate, req.ExpiryDate, req.Quantity, req.HighPriority).Clean()
	if !ok {
		return pantry.Item{}, ErrNameRequired
	}

	if item.ExpiryDate == "" && strings.TrimSpace(req.FoodType) != "" {
		purchase := item.PurchaseDate
		if purchase == "" {
			purchase = pantry.FormatDate(s.clock.Now())
		}
		item.ExpiryDate = s.estimator.EstimateString(ctx, purchase, req.FoodType).String()
	}

	sess.Store.Add(item)
	return item, nil
}

// ReplaceItems stores the result of a bulk edit. Rows without a name are dropped.
func (s *Service) ReplaceItems(sess *Session, items []pantry.Item) []pantry.Item {
	cleaned := cleanItems(items)
	sess.Store.ReplaceAll(cleaned)
	return cleaned
}

// RemoveItems removes items by name and returns how many were removed
func (s *Service) RemoveItems(sess *Session, names []string) int {
	return sess.Store.RemoveByName(names...)
}

// Estimate estimates the expiry of foodType bought on purchaseDate (today when empty)
func (s *Service) Estimate(ctx context.Context, purchaseDate string, foodType string) pantry.ExpiryResult {
	if strings.TrimSpace(purchaseDate) == "" {
		return s.estimator.Estimate(ctx, s.clock.Now(), foodType)
	}
	return s.estimator.EstimateString(ctx, purchaseDate, foodType)
}

// Expiring returns the items expiring within days, or the default horizon when days < 0
func (s *Service) Expiring(sess *Session, days int) []pantry.Expiring {
	if days < 0 {
		days = s.horizon
	}
	return sess.Reporter.SoonExpiring(days)
}

// Calendar returns the session's expiry calendar
func (s *Service) Calendar(sess *Session) []pantry.CalendarEntry {
	return sess.Reporter.Calendar()
}

// ScanReceipt reads a receipt image into the session's staged batch,
// replacing any batch still under review. The pantry is not changed.
func (s *Service) ScanReceipt(ctx context.Context, sess *Session, filename string, data []byte, contentType string) (*pantry.Batch, error) {
	id := s.idGenerator.Generate()

	savedPath, err := s.storage.Save(imageFilename(id, filename), data)
	if err != nil {
		return nil, fmt.Errorf("saving file: %w", err)
	}

	batch, err := s.importer.Extract(ctx, data, contentType)
	if err != nil {
		slog.Error("Failed to scan receipt",
			"filename", filename,
			"content_type", contentType,
			"file_size", len(data),
			"error", err,
		)
		if delErr := s.storage.Delete(savedPath); delErr != nil {
			slog.Warn("Failed to delete receipt image", "filename", savedPath, "error", delErr)
		}
		return nil, fmt.Errorf("scanning receipt: %w", err)
	}

	s.clearStaged(sess)

	batch.ID = id
	batch.Image = savedPath
	sess.Staged = batch
	return batch, nil
}

// StagedBatch returns the receipt batch under review
func (s *Service) StagedBatch(sess *Session) (*pantry.Batch, error) {
	if sess.Staged == nil {
		return nil, ErrNoStagedBatch
	}
	return sess.Staged, nil
}

// StagedImage returns the image of the receipt under review
func (s *Service) StagedImage(sess *Session) ([]byte, string, error) {
	if sess.Staged == nil || sess.Staged.Image == "" {
		return nil, "", ErrNoStagedBatch
	}
	data, err := s.storage.Get(sess.Staged.Image)
	if err != nil {
		return nil, "", fmt.Errorf("getting receipt image: %w", err)
	}
	return data, sess.Staged.ContentType, nil
}

// ConfirmReceipt commits reviewed items to the pantry and ends the review.
// A nil items slice commits the batch as extracted.
func (s *Service) ConfirmReceipt(sess *Session, items []pantry.Item) ([]pantry.Item, error) {
	if sess.Staged == nil {
		return nil, ErrNoStagedBatch
	}
	if items == nil {
		items = sess.Staged.Items
	}

	confirmed := cleanItems(items)
	sess.Store.Add(confirmed...)
	s.clearStaged(sess)
	return confirmed, nil
}

// DiscardReceipt drops the batch under review
func (s *Service) DiscardReceipt(sess *Session) error {
	if sess.Staged == nil {
		return ErrNoStagedBatch
	}
	s.clearStaged(sess)
	return nil
}

func (s *Service) clearStaged(sess *Session) {
	if sess.Staged == nil {
		return
	}
	if sess.Staged.Image != "" {
		if err := s.storage.Delete(sess.Staged.Image); err != nil {
			slog.Warn("Failed to delete receipt image", "filename", sess.Staged.Image, "error", err)
		}
	}
	sess.Staged = nil
}

// ImportJSON appends a pantry list export to the session's pantry
func (s *Service) ImportJSON(ctx context.Context, sess *Session, r io.Reader) ([]pantry.Item, error) {
	items, err := s.importer.ImportJSON(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("importing pantry list: %w", err)
	}
	sess.Store.Add(items...)
	return items, nil
}

// ExportJSON writes the session's pantry as a downloadable list
func (s *Service) ExportJSON(sess *Session, w io.Writer) error {
	return pantry.ExportJSON(w, sess.Store.All())
}

// SaveSnapshot saves the session's pantry under name
func (s *Service) SaveSnapshot(sess *Session, name string) (*pantry.Snapshot, error) {
	if s.archive == nil {
		return nil, ErrArchiveDisabled
	}
	snapshot := &pantry.Snapshot{
		Name:      name,
		Items:     sess.Store.All(),
		CreatedAt: s.clock.Now(),
	}
	if err := s.archive.SaveSnapshot(snapshot); err != nil {
		return nil, fmt.Errorf("saving snapshot: %w", err)
	}
	return snapshot, nil
}

// ListSnapshots returns the saved snapshots, newest first
func (s *Service) ListSnapshots() ([]*pantry.Snapshot, error) {
	if s.archive == nil {
		return nil, ErrArchiveDisabled
	}
	snapshots, err := s.archive.ListSnapshots()
	if err != nil {
		return nil, fmt.Errorf("listing snapshots: %w", err)
	}
	return snapshots, nil
}

// RestoreSnapshot replaces the session's pantry with a saved snapshot
func (s *Service) RestoreSnapshot(sess *Session, name string) ([]pantry.Item, error) {
	if s.archive == nil {
		return nil, ErrArchiveDisabled
	}
	snapshot, err := s.archive.GetSnapshot(name)
	if err != nil {
		return nil, fmt.Errorf("getting snapshot: %w", err)
	}
	sess.Store.ReplaceAll(snapshot.Items)
	return sess.Store.All(), nil
}

// DeleteSnapshot removes a saved snapshot
func (s *Service) DeleteSnapshot(name string) error {
	if s.archive == nil {
		return ErrArchiveDisabled
	}
	if err := s.archive.DeleteSnapshot(name); err != nil {
		return fmt.Errorf("deleting snapshot: %w", err)
	}
	return nil
}

// SetPreferences stores the session's recipe preferences. They seed the next
// conversation; a conversation in progress keeps its prompt until reset.
func (s *Service) SetPreferences(sess *Session, prefs recipe.Preferences) recipe.Preferences {
	sess.Preferences = prefs.Normalize()
	return sess.Preferences
}

// Chat sends a message to the recipe assistant. The first message of a
// conversation seeds it with the current pantry and preferences.
func (s *Service) Chat(ctx context.Context, sess *Session, message string) (string, error) {
	if len(sess.Chat.History()) == 0 {
		sess.Chat.SetSystemPrompt(s.systemPrompt(sess))
	}
	reply, err := sess.Chat.Send(ctx, message)
	if err != nil {
		slog.Error("Recipe chat failed", "session", sess.ID, "error", err)
		return "", err
	}
	return reply, nil
}

// ResetChat starts a new conversation from the current pantry and preferences
func (s *Service) ResetChat(sess *Session) {
	sess.Chat.Reset(s.systemPrompt(sess))
}

// ConsumeIngredients removes the pantry items used by the latest recipe and
// returns their names
func (s *Service) ConsumeIngredients(sess *Session) ([]string, error) {
	latest := sess.Chat.LatestRecipe()
	if latest == "" {
		return nil, ErrNoRecipe
	}
	used := recipe.UsedIngredients(latest, sess.Store.All())
	removed := sess.Store.RemoveByName(used...)
	slog.Info("Removed used ingredients", "session", sess.ID, "names", used, "items", removed)
	return used, nil
}

// RecipeText returns the download name and text of the latest recipe
func (s *Service) RecipeText(sess *Session) (string, string, error) {
	latest := sess.Chat.LatestRecipe()
	if latest == "" {
		return "", "", ErrNoRecipe
	}
	return recipe.Filename(s.clock.Now()), latest, nil
}

func (s *Service) systemPrompt(sess *Session) string {
	return recipe.BuildPrompt(sess.Store.All(), sess.Preferences, s.clock.Now())
}

// cleanItems applies item defaults and drops rows without a name
func cleanItems(items []pantry.Item) []pantry.Item {
	cleaned := make([]pantry.Item, 0, len(items))
	for _, item := range items {
		if item, ok := item.Clean(); ok {
			cleaned = append(cleaned, item)
		}
	}
	return cleaned
}
