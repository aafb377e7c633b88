package photo

import (
	"context"
	"errors"
	"io"
	"sort"
	"testing"

	"github.com/google/uuid"

	"github.com/skylist/skylist-api/internal/pkg/storage"
)

// repoStub is an in-memory Repository with per-call failure injection
type repoStub struct {
	photos       []*Photo
	failCreateAt map[int]bool // fail the nth Create call (0-based)
	createCalls  int
	replaceCalls int
}

func (r *repoStub) Create(_ context.Context, p *Photo) error {
	call := r.createCalls
	r.createCalls++
	if r.failCreateAt[call] {
		return errors.New("insert failed")
	}
	cp := *p
	r.photos = append(r.photos, &cp)
	return nil
}

func (r *repoStub) GetByID(_ context.Context, id uuid.UUID) (*Photo, error) {
	for _, p := range r.photos {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *repoStub) ListByAircraft(_ context.Context, aircraftID uuid.UUID) ([]*Photo, error) {
	var out []*Photo
	for _, p := range r.photos {
		if p.AircraftID == aircraftID {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DisplayOrder < out[j].DisplayOrder })
	return out, nil
}

func (r *repoStub) CountByAircraft(_ context.Context, aircraftID uuid.UUID) (int, error) {
	count := 0
	for _, p := range r.photos {
		if p.AircraftID == aircraftID {
			count++
		}
	}
	return count, nil
}

func (r *repoStub) Delete(_ context.Context, id uuid.UUID) error {
	for i, p := range r.photos {
		if p.ID == id {
			r.photos = append(r.photos[:i], r.photos[i+1:]...)
			return nil
		}
	}
	return ErrPhotoNotFound
}

func (r *repoStub) SetPrimary(_ context.Context, aircraftID, photoID uuid.UUID) error {
	for _, p := range r.photos {
		if p.AircraftID == aircraftID {
			p.IsPrimary = p.ID == photoID
		}
	}
	return nil
}

func (r *repoStub) UpdateDetails(_ context.Context, id uuid.UUID, altText, caption string) error {
	for _, p := range r.photos {
		if p.ID == id {
			p.AltText = altText
			p.Caption = caption
			return nil
		}
	}
	return ErrPhotoNotFound
}

func (r *repoStub) ReplaceOrder(_ context.Context, aircraftID uuid.UUID, orderedIDs []uuid.UUID) error {
	r.replaceCalls++
	pos := make(map[uuid.UUID]int, len(orderedIDs))
	for i, id := range orderedIDs {
		pos[id] = i
	}
	for _, p := range r.photos {
		if p.AircraftID != aircraftID {
			continue
		}
		p.DisplayOrder = pos[p.ID]
		p.IsPrimary = p.ID == orderedIDs[0]
	}
	return nil
}

// storeStub is an in-memory Storage with per-call failure injection
type storeStub struct {
	blobs      map[string][]byte
	failPutAt  map[int]bool // fail the nth Put call (0-based)
	putCalls   int
	failDelete bool
	deleted    []string
}

func newStoreStub() *storeStub {
	return &storeStub{blobs: map[string][]byte{}}
}

func (s *storeStub) Put(_ context.Context, key string, reader io.Reader, _ string, opts storage.PutOptions) error {
	call := s.putCalls
	s.putCalls++
	if s.failPutAt[call] {
		return errors.New("store rejected write")
	}
	if opts.IfAbsent {
		if _, ok := s.blobs[key]; ok {
			return storage.ErrKeyExists
		}
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	s.blobs[key] = data
	return nil
}

func (s *storeStub) Delete(_ context.Context, key string) error {
	s.deleted = append(s.deleted, key)
	if s.failDelete {
		return errors.New("store delete failed")
	}
	delete(s.blobs, key)
	return nil
}

func (s *storeStub) Exists(_ context.Context, key string) (bool, error) {
	_, ok := s.blobs[key]
	return ok, nil
}

func (s *storeStub) URL(key string) string {
	return "http://127.0.0.1:8080/static/" + key
}

// jpegFile returns a candidate that sniffs as image/jpeg, padded to size
func jpegFile(name string, size int) CandidateFile {
	data := make([]byte, size)
	copy(data, []byte{0xFF, 0xD8, 0xFF, 0xE0})
	return CandidateFile{Data: data, OriginalName: name, AltText: name}
}

func textFile(name string) CandidateFile {
	return CandidateFile{Data: []byte("this is not an image at all"), OriginalName: name}
}

func TestValidate(t *testing.T) {
	m := NewManager(&repoStub{}, newStoreStub(), nil)

	t.Run("accepts jpeg", func(t *testing.T) {
		if err := m.Validate(jpegFile("panel.jpg", 1024)); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("rejects unsupported type", func(t *testing.T) {
		if err := m.Validate(textFile("notes.txt")); !errors.Is(err, ErrUnsupportedType) {
			t.Errorf("expected ErrUnsupportedType, got %v", err)
		}
	})

	t.Run("accepts file at exact size limit", func(t *testing.T) {
		if err := m.Validate(jpegFile("big.jpg", storage.MaxImageSize)); err != nil {
			t.Errorf("expected boundary-size file to pass, got %v", err)
		}
	})

	t.Run("rejects file one byte over the limit", func(t *testing.T) {
		if err := m.Validate(jpegFile("huge.jpg", storage.MaxImageSize+1)); !errors.Is(err, ErrTooLarge) {
			t.Errorf("expected ErrTooLarge, got %v", err)
		}
	})
}

func TestUploadBatchFirstPhoto(t *testing.T) {
	repo := &repoStub{}
	store := newStoreStub()
	m := NewManager(repo, store, nil)
	aircraftID := uuid.New()

	result, err := m.UploadBatch(context.Background(), aircraftID, []CandidateFile{jpegFile("exterior.jpg", 512)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Created) != 1 || len(result.Failed) != 0 {
		t.Fatalf("expected 1 created / 0 failed, got %d / %d", len(result.Created), len(result.Failed))
	}

	p := result.Created[0]
	if p.DisplayOrder != 0 {
		t.Errorf("expected display_order 0, got %d", p.DisplayOrder)
	}
	if !p.IsPrimary {
		t.Error("expected first photo of an empty aircraft to be primary")
	}
	if _, ok := store.blobs[p.StoragePath]; !ok {
		t.Error("expected blob to exist for the created row")
	}
}

func TestUploadBatchAppendsAfterExisting(t *testing.T) {
	repo := &repoStub{}
	store := newStoreStub()
	m := NewManager(repo, store, nil)
	aircraftID := uuid.New()

	// Seed two existing photos
	if _, err := m.UploadBatch(context.Background(), aircraftID, []CandidateFile{
		jpegFile("one.jpg", 256),
		jpegFile("two.jpg", 256),
	}); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	result, err := m.UploadBatch(context.Background(), aircraftID, []CandidateFile{jpegFile("three.jpg", 256)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	p := result.Created[0]
	if p.DisplayOrder != 2 {
		t.Errorf("expected display_order 2, got %d", p.DisplayOrder)
	}
	if p.IsPrimary {
		t.Error("expected appended photo not to be primary")
	}
}

func TestUploadBatchCompensatesFailedInsert(t *testing.T) {
	repo := &repoStub{failCreateAt: map[int]bool{1: true}} // 2nd insert fails
	store := newStoreStub()
	m := NewManager(repo, store, nil)
	aircraftID := uuid.New()

	result, err := m.UploadBatch(context.Background(), aircraftID, []CandidateFile{
		jpegFile("a.jpg", 256),
		jpegFile("b.jpg", 256),
		jpegFile("c.jpg", 256),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Created) != 2 {
		t.Fatalf("expected 2 created, got %d", len(result.Created))
	}
	if len(result.Failed) != 1 {
		t.Fatalf("expected 1 failed, got %d", len(result.Failed))
	}
	if result.Failed[0].Index != 1 || result.Failed[0].Name != "b.jpg" {
		t.Errorf("wrong failure recorded: %+v", result.Failed[0])
	}
	if got := FailureReason(result.Failed[0].Err); got != "persist_failed" {
		t.Errorf("expected persist_failed, got %s", got)
	}

	// Exactly 2 rows and exactly 2 blobs; the failed file's blob was deleted
	if len(repo.photos) != 2 {
		t.Errorf("expected 2 rows, got %d", len(repo.photos))
	}
	if len(store.blobs) != 2 {
		t.Errorf("expected 2 blobs, got %d", len(store.blobs))
	}
	if len(store.deleted) != 1 {
		t.Fatalf("expected 1 compensating delete, got %d", len(store.deleted))
	}
	for _, p := range repo.photos {
		if p.StoragePath == store.deleted[0] {
			t.Error("compensating delete removed a live row's blob")
		}
	}

	// Batch independence: the 3rd file keeps its original batch position
	if result.Created[1].DisplayOrder != 2 {
		t.Errorf("expected 3rd file at display_order 2, got %d", result.Created[1].DisplayOrder)
	}
}

func TestUploadBatchIndependence(t *testing.T) {
	// 5 files: #3 (index 2) fails validation, #4 (index 3) fails its blob
	// write. Put calls happen only for files that pass validation, so the
	// failing put is the 3rd one (0-based call 2).
	repo := &repoStub{}
	store := newStoreStub()
	store.failPutAt = map[int]bool{2: true}
	m := NewManager(repo, store, nil)
	aircraftID := uuid.New()

	result, err := m.UploadBatch(context.Background(), aircraftID, []CandidateFile{
		jpegFile("f1.jpg", 256),
		jpegFile("f2.jpg", 256),
		textFile("f3.txt"),
		jpegFile("f4.jpg", 256),
		jpegFile("f5.jpg", 256),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Created) != 3 {
		t.Fatalf("expected 3 created, got %d", len(result.Created))
	}
	if len(result.Failed) != 2 {
		t.Fatalf("expected 2 failed, got %d", len(result.Failed))
	}

	// Display order reflects the original batch position, gaps preserved
	wantOrders := []int{0, 1, 4}
	for i, p := range result.Created {
		if p.DisplayOrder != wantOrders[i] {
			t.Errorf("created[%d]: expected display_order %d, got %d", i, wantOrders[i], p.DisplayOrder)
		}
	}

	if got := FailureReason(result.Failed[0].Err); got != "unsupported_type" {
		t.Errorf("expected unsupported_type for f3, got %s", got)
	}
	if got := FailureReason(result.Failed[1].Err); got != "upload_failed" {
		t.Errorf("expected upload_failed for f4, got %s", got)
	}
	if result.Failed[0].Index != 2 || result.Failed[1].Index != 3 {
		t.Errorf("failure indexes wrong: %d, %d", result.Failed[0].Index, result.Failed[1].Index)
	}

	// A failed blob write leaves nothing to compensate
	if len(store.deleted) != 0 {
		t.Errorf("expected no deletes, got %v", store.deleted)
	}
	if len(store.blobs) != 3 {
		t.Errorf("expected 3 blobs, got %d", len(store.blobs))
	}
}

func TestUploadBatchPrimaryAfterLeadingFailure(t *testing.T) {
	// When the first file of an empty aircraft fails, the first file that is
	// actually created becomes primary, keeping the listing from ending up
	// with photos but no primary.
	repo := &repoStub{}
	store := newStoreStub()
	store.failPutAt = map[int]bool{0: true}
	m := NewManager(repo, store, nil)
	aircraftID := uuid.New()

	result, err := m.UploadBatch(context.Background(), aircraftID, []CandidateFile{
		jpegFile("fails.jpg", 256),
		jpegFile("lands.jpg", 256),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Created) != 1 {
		t.Fatalf("expected 1 created, got %d", len(result.Created))
	}
	if !result.Created[0].IsPrimary {
		t.Error("expected the first created photo to be primary")
	}

	primaries := 0
	for _, p := range repo.photos {
		if p.IsPrimary {
			primaries++
		}
	}
	if primaries != 1 {
		t.Errorf("expected exactly 1 primary, got %d", primaries)
	}
}

func TestUploadBatchAtMostOnePrimary(t *testing.T) {
	repo := &repoStub{}
	m := NewManager(repo, newStoreStub(), nil)
	aircraftID := uuid.New()

	if _, err := m.UploadBatch(context.Background(), aircraftID, []CandidateFile{
		jpegFile("a.jpg", 256),
		jpegFile("b.jpg", 256),
		jpegFile("c.jpg", 256),
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := m.UploadBatch(context.Background(), aircraftID, []CandidateFile{jpegFile("d.jpg", 256)}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	primaries := 0
	for _, p := range repo.photos {
		if p.IsPrimary {
			primaries++
		}
	}
	if primaries != 1 {
		t.Errorf("expected exactly 1 primary across batches, got %d", primaries)
	}
}

func TestRemove(t *testing.T) {
	t.Run("deletes blob and row", func(t *testing.T) {
		repo := &repoStub{}
		store := newStoreStub()
		m := NewManager(repo, store, nil)
		aircraftID := uuid.New()

		result, _ := m.UploadBatch(context.Background(), aircraftID, []CandidateFile{jpegFile("gone.jpg", 256)})
		p := result.Created[0]

		if err := m.Remove(context.Background(), p.ID); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(repo.photos) != 0 {
			t.Error("expected row to be deleted")
		}
		if _, ok := store.blobs[p.StoragePath]; ok {
			t.Error("expected blob to be deleted")
		}
	})

	t.Run("store failure does not block row delete", func(t *testing.T) {
		repo := &repoStub{}
		store := newStoreStub()
		m := NewManager(repo, store, nil)
		aircraftID := uuid.New()

		result, _ := m.UploadBatch(context.Background(), aircraftID, []CandidateFile{jpegFile("stuck.jpg", 256)})
		store.failDelete = true

		if err := m.Remove(context.Background(), result.Created[0].ID); err != nil {
			t.Fatalf("expected row delete to succeed, got %v", err)
		}
		if len(repo.photos) != 0 {
			t.Error("expected row to be deleted despite store failure")
		}
	})

	t.Run("primary is not reassigned", func(t *testing.T) {
		repo := &repoStub{}
		m := NewManager(repo, newStoreStub(), nil)
		aircraftID := uuid.New()

		result, _ := m.UploadBatch(context.Background(), aircraftID, []CandidateFile{
			jpegFile("primary.jpg", 256),
			jpegFile("second.jpg", 256),
		})

		if err := m.Remove(context.Background(), result.Created[0].ID); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		remaining, _ := repo.ListByAircraft(context.Background(), aircraftID)
		if len(remaining) != 1 {
			t.Fatalf("expected 1 remaining photo, got %d", len(remaining))
		}
		if remaining[0].IsPrimary {
			t.Error("expected no automatic primary promotion after delete")
		}
		if remaining[0].DisplayOrder != 1 {
			t.Errorf("expected sibling to keep display_order 1, got %d", remaining[0].DisplayOrder)
		}
	})

	t.Run("not found", func(t *testing.T) {
		m := NewManager(&repoStub{}, newStoreStub(), nil)
		if err := m.Remove(context.Background(), uuid.New()); !errors.Is(err, ErrPhotoNotFound) {
			t.Errorf("expected ErrPhotoNotFound, got %v", err)
		}
	})
}

func TestReorder(t *testing.T) {
	setup := func(t *testing.T) (*repoStub, *Manager, uuid.UUID, []*Photo) {
		t.Helper()
		repo := &repoStub{}
		m := NewManager(repo, newStoreStub(), nil)
		aircraftID := uuid.New()
		result, err := m.UploadBatch(context.Background(), aircraftID, []CandidateFile{
			jpegFile("a.jpg", 256),
			jpegFile("b.jpg", 256),
			jpegFile("c.jpg", 256),
		})
		if err != nil {
			t.Fatalf("seed failed: %v", err)
		}
		return repo, m, aircraftID, result.Created
	}

	t.Run("applies new order", func(t *testing.T) {
		repo, m, aircraftID, created := setup(t)

		newOrder := []uuid.UUID{created[2].ID, created[0].ID, created[1].ID}
		if err := m.Reorder(context.Background(), aircraftID, newOrder); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		photos, _ := repo.ListByAircraft(context.Background(), aircraftID)
		for i, p := range photos {
			if p.ID != newOrder[i] {
				t.Errorf("position %d: expected %s, got %s", i, newOrder[i], p.ID)
			}
			if p.DisplayOrder != i {
				t.Errorf("position %d: expected display_order %d, got %d", i, i, p.DisplayOrder)
			}
		}
	})

	t.Run("promotes first position to primary", func(t *testing.T) {
		repo, m, aircraftID, created := setup(t)

		newOrder := []uuid.UUID{created[1].ID, created[0].ID, created[2].ID}
		if err := m.Reorder(context.Background(), aircraftID, newOrder); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		primaries := 0
		for _, p := range repo.photos {
			if p.IsPrimary {
				primaries++
				if p.ID != created[1].ID {
					t.Errorf("expected %s to be primary, got %s", created[1].ID, p.ID)
				}
			}
		}
		if primaries != 1 {
			t.Errorf("expected exactly 1 primary, got %d", primaries)
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		repo, m, aircraftID, created := setup(t)

		newOrder := []uuid.UUID{created[2].ID, created[1].ID, created[0].ID}
		if err := m.Reorder(context.Background(), aircraftID, newOrder); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		first, _ := repo.ListByAircraft(context.Background(), aircraftID)

		if err := m.Reorder(context.Background(), aircraftID, newOrder); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		second, _ := repo.ListByAircraft(context.Background(), aircraftID)

		for i := range first {
			if first[i].ID != second[i].ID || first[i].DisplayOrder != second[i].DisplayOrder || first[i].IsPrimary != second[i].IsPrimary {
				t.Errorf("position %d changed on repeat reorder", i)
			}
		}
	})

	t.Run("rejects missing id", func(t *testing.T) {
		repo, m, aircraftID, created := setup(t)
		before, _ := repo.ListByAircraft(context.Background(), aircraftID)

		err := m.Reorder(context.Background(), aircraftID, []uuid.UUID{created[0].ID, created[1].ID})
		if !errors.Is(err, ErrInvalidSet) {
			t.Fatalf("expected ErrInvalidSet, got %v", err)
		}

		// No rows mutated
		if repo.replaceCalls != 0 {
			t.Error("expected no ReplaceOrder call for an invalid set")
		}
		after, _ := repo.ListByAircraft(context.Background(), aircraftID)
		for i := range before {
			if before[i].DisplayOrder != after[i].DisplayOrder {
				t.Error("rows mutated despite invalid set")
			}
		}
	})

	t.Run("rejects unknown id", func(t *testing.T) {
		_, m, aircraftID, created := setup(t)
		err := m.Reorder(context.Background(), aircraftID, []uuid.UUID{created[0].ID, created[1].ID, uuid.New()})
		if !errors.Is(err, ErrInvalidSet) {
			t.Errorf("expected ErrInvalidSet, got %v", err)
		}
	})

	t.Run("rejects duplicate id", func(t *testing.T) {
		_, m, aircraftID, created := setup(t)
		err := m.Reorder(context.Background(), aircraftID, []uuid.UUID{created[0].ID, created[1].ID, created[1].ID})
		if !errors.Is(err, ErrInvalidSet) {
			t.Errorf("expected ErrInvalidSet, got %v", err)
		}
	})

	t.Run("rejects empty set", func(t *testing.T) {
		_, m, aircraftID, _ := setup(t)
		err := m.Reorder(context.Background(), aircraftID, nil)
		if !errors.Is(err, ErrInvalidSet) {
			t.Errorf("expected ErrInvalidSet, got %v", err)
		}
	})
}

func TestSetPrimary(t *testing.T) {
	repo := &repoStub{}
	m := NewManager(repo, newStoreStub(), nil)
	aircraftID := uuid.New()

	result, _ := m.UploadBatch(context.Background(), aircraftID, []CandidateFile{
		jpegFile("a.jpg", 256),
		jpegFile("b.jpg", 256),
	})

	p, err := m.SetPrimary(context.Background(), result.Created[1].ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !p.IsPrimary {
		t.Error("expected returned photo to be primary")
	}

	primaries := 0
	for _, stored := range repo.photos {
		if stored.IsPrimary {
			primaries++
			if stored.ID != result.Created[1].ID {
				t.Errorf("wrong photo is primary: %s", stored.ID)
			}
		}
	}
	if primaries != 1 {
		t.Errorf("expected exactly 1 primary, got %d", primaries)
	}
}

func TestUpdateDetails(t *testing.T) {
	repo := &repoStub{}
	m := NewManager(repo, newStoreStub(), nil)
	aircraftID := uuid.New()

	result, _ := m.UploadBatch(context.Background(), aircraftID, []CandidateFile{jpegFile("a.jpg", 256)})

	p, err := m.UpdateDetails(context.Background(), result.Created[0].ID, "Front quarter view", "Fresh paint 2024")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.AltText != "Front quarter view" || p.Caption != "Fresh paint 2024" {
		t.Errorf("details not updated: %+v", p)
	}
	if repo.photos[0].AltText != "Front quarter view" {
		t.Error("repository row not updated")
	}
}

func TestBuildKeyUnique(t *testing.T) {
	m := NewManager(&repoStub{}, newStoreStub(), nil)
	aircraftID := uuid.New()

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		key := m.buildKey(aircraftID, "same name.jpg", "image/jpeg")
		if seen[key] {
			t.Fatalf("duplicate key allocated: %s", key)
		}
		seen[key] = true
	}
}

func TestSanitizeName(t *testing.T) {
	cases := map[string]string{
		"N12345 Exterior.JPG":   "n12345-exterior",
		"../../etc/passwd":      "photo",
		"фото.jpg":              "photo",
		"":                      "photo",
		"already-clean.png":     "already-clean",
		"many   spaces here.j":  "many-spaces-here",
	}
	for in, want := range cases {
		if got := sanitizeName(in); got != want {
			t.Errorf("sanitizeName(%q) = %q, want %q", in, got, want)
		}
	}
}
