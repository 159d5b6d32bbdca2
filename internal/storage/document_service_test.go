package storage

import (
	"encoding/json"
	"os"
	"slices"
	"testing"
	"time"
)

func TestDocumentCreateGetRoundTrip(t *testing.T) {
	_, docs, _, queue := newTestServices(t)
	ctx := testCtx(t)

	content := DefaultContent()
	content.Body.Text = "hello\n\nworld"
	created, err := docs.Create(ctx, "Trip Notes", content)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.Title != "Trip Notes" {
		t.Errorf("Title = %q, want %q", created.Title, "Trip Notes")
	}
	if !IsDocumentID(created.ID) {
		t.Errorf("ID = %q, not a document id", created.ID)
	}

	got, err := docs.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Content.Body.Text != "hello\n\nworld" {
		t.Errorf("Body.Text = %q, want %q", got.Content.Body.Text, "hello\n\nworld")
	}
	if got.Size != created.Size {
		t.Errorf("Size = %d, want %d", got.Size, created.Size)
	}

	if len(queue.enqueued) != 1 || queue.enqueued[0] != created.ID {
		t.Errorf("enqueued = %v, want [%s]", queue.enqueued, created.ID)
	}
}

func TestDocumentCreateDefaults(t *testing.T) {
	_, docs, _, _ := newTestServices(t)
	ctx := testCtx(t)

	created, err := docs.Create(ctx, "", nil)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.Title != DefaultDocumentTitle {
		t.Errorf("Title = %q, want %q", created.Title, DefaultDocumentTitle)
	}
	got, err := docs.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Content.Body.Text != "" {
		t.Errorf("Body.Text = %q, want empty skeleton", got.Content.Body.Text)
	}
	if got.Content.PageStyle.PageSize.Width != 612 || got.Content.PageStyle.PageSize.Height != 792 {
		t.Errorf("PageSize = %+v, want default letter size", got.Content.PageStyle.PageSize)
	}
}

func TestDocumentGetNotFound(t *testing.T) {
	_, docs, _, _ := newTestServices(t)

	_, err := docs.Get(testCtx(t), "doc_1700000000000_zzzzzz")
	if err != ErrDocumentNotFound {
		t.Errorf("err = %v, want ErrDocumentNotFound", err)
	}
}

func TestDocumentGetCorrupt(t *testing.T) {
	paths, docs, _, _ := newTestServices(t)
	ctx := testCtx(t)

	created, err := docs.Create(ctx, "Broken", nil)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := os.WriteFile(paths.ContentFile(created.ID), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err = docs.Get(ctx, created.ID)
	if err == nil {
		t.Fatal("expected error for corrupt content")
	}
	if err == ErrDocumentNotFound {
		t.Error("corrupt content reported as not-found")
	}
}

func TestDocumentUpdateTitleOnlyKeepsContent(t *testing.T) {
	_, docs, _, queue := newTestServices(t)
	ctx := testCtx(t)

	content := DefaultContent()
	content.Body.Text = "unchanged body"
	created, err := docs.Create(ctx, "Old", content)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	before := len(queue.enqueued)

	newTitle := "New"
	updated, err := docs.Update(ctx, created.ID, &newTitle, nil)
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Title != "New" {
		t.Errorf("Title = %q, want %q", updated.Title, "New")
	}
	if updated.Content.Body.Text != "unchanged body" {
		t.Errorf("Body.Text = %q, want unchanged", updated.Content.Body.Text)
	}
	if !updated.ModifiedAt.After(created.ModifiedAt) && !updated.ModifiedAt.Equal(created.ModifiedAt) {
		t.Error("ModifiedAt not refreshed")
	}

	// Size reflects the unchanged content's serialization length.
	data, _ := json.Marshal(updated.Content)
	if updated.Size != int64(len(data)) {
		t.Errorf("Size = %d, want %d", updated.Size, len(data))
	}

	// Title-only update must not rebuild the preview.
	if len(queue.enqueued) != before {
		t.Errorf("enqueued grew to %d on a title-only update", len(queue.enqueued))
	}
}

func TestDocumentUpdateContentQueuesPreview(t *testing.T) {
	_, docs, _, queue := newTestServices(t)
	ctx := testCtx(t)

	created, err := docs.Create(ctx, "Doc", nil)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	before := len(queue.enqueued)

	content := DefaultContent()
	content.Body.Text = "fresh"
	if _, err := docs.Update(ctx, created.ID, nil, content); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if len(queue.enqueued) != before+1 {
		t.Errorf("enqueued = %d, want %d", len(queue.enqueued), before+1)
	}
}

func TestDocumentUpdateNotFound(t *testing.T) {
	_, docs, _, _ := newTestServices(t)
	title := "x"
	if _, err := docs.Update(testCtx(t), "doc_1700000000000_zzzzzz", &title, nil); err != ErrDocumentNotFound {
		t.Errorf("err = %v, want ErrDocumentNotFound", err)
	}
}

func TestDocumentDelete(t *testing.T) {
	paths, docs, _, queue := newTestServices(t)
	ctx := testCtx(t)

	created, err := docs.Create(ctx, "Gone", nil)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := docs.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := os.Stat(paths.ContentFile(created.ID)); !os.IsNotExist(err) {
		t.Error("content file still exists")
	}
	if _, err := os.Stat(paths.MetadataFile(created.ID)); !os.IsNotExist(err) {
		t.Error("metadata file still exists")
	}
	if !slices.Contains(queue.removed, created.ID) {
		t.Error("preview removal not requested")
	}

	if err := docs.Delete(ctx, created.ID); err != ErrDocumentNotFound {
		t.Errorf("second delete err = %v, want ErrDocumentNotFound", err)
	}
}

func TestDocumentListSortsAndSkipsBadRecords(t *testing.T) {
	paths, docs, _, _ := newTestServices(t)
	ctx := testCtx(t)

	first, err := docs.Create(ctx, "First", nil)
	if err != nil {
		t.Fatal(err)
	}
	second, err := docs.Create(ctx, "Second", nil)
	if err != nil {
		t.Fatal(err)
	}
	// Force a clear ordering.
	meta, _ := docs.readMetadata(second.ID)
	meta.ModifiedAt = time.Now().Add(time.Hour)
	if err := docs.writeMetadata(meta); err != nil {
		t.Fatal(err)
	}
	// Drop a garbage record into the metadata directory.
	if err := os.WriteFile(paths.MetadataFile("doc_1_garbage"), []byte("nope"), 0o644); err != nil {
		t.Fatal(err)
	}

	list, err := docs.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("len = %d, want 2 (bad record skipped)", len(list))
	}
	if list[0].ID != second.ID || list[1].ID != first.ID {
		t.Errorf("order = [%s %s], want newest first", list[0].ID, list[1].ID)
	}
	if list[0].PreviewURL == "" {
		t.Error("summary missing preview URL")
	}
}

func TestDocumentMoveUpdatesCounts(t *testing.T) {
	_, docs, folders, _ := newTestServices(t)
	ctx := testCtx(t)

	notes, err := folders.Create(ctx, "Notes", "")
	if err != nil {
		t.Fatal(err)
	}
	archive, err := folders.Create(ctx, "Archive", "")
	if err != nil {
		t.Fatal(err)
	}
	doc, err := docs.Create(ctx, "Wandering", nil)
	if err != nil {
		t.Fatal(err)
	}

	// Root -> Notes.
	moved, err := docs.Move(ctx, doc.ID, &notes.ID)
	if err != nil {
		t.Fatalf("Move failed: %v", err)
	}
	if moved.FolderID != notes.ID {
		t.Errorf("FolderID = %q, want %q", moved.FolderID, notes.ID)
	}
	assertCount(t, folders, notes.ID, 1)
	assertCount(t, folders, archive.ID, 0)

	// Notes -> Archive.
	if _, err := docs.Move(ctx, doc.ID, &archive.ID); err != nil {
		t.Fatalf("Move failed: %v", err)
	}
	assertCount(t, folders, notes.ID, 0)
	assertCount(t, folders, archive.ID, 1)

	// Archive -> root.
	moved, err = docs.Move(ctx, doc.ID, nil)
	if err != nil {
		t.Fatalf("Move failed: %v", err)
	}
	if moved.FolderID != "" {
		t.Errorf("FolderID = %q, want empty", moved.FolderID)
	}
	assertCount(t, folders, archive.ID, 0)
}

func TestDocumentMoveValidation(t *testing.T) {
	_, docs, _, _ := newTestServices(t)
	ctx := testCtx(t)

	if _, err := docs.Move(ctx, "not-an-id", nil); err == nil {
		t.Error("expected error for malformed document id")
	}

	doc, err := docs.Create(ctx, "Doc", nil)
	if err != nil {
		t.Fatal(err)
	}
	bad := "folder_1700000000000_zzzzzz"
	if _, err := docs.Move(ctx, doc.ID, &bad); err != ErrFolderNotFound {
		t.Errorf("err = %v, want ErrFolderNotFound", err)
	}
}

func assertCount(t *testing.T, folders *FolderService, id string, want int) {
	t.Helper()
	f, err := folders.load(id)
	if err != nil {
		t.Fatalf("load(%s) failed: %v", id, err)
	}
	if f.DocumentCount != want {
		t.Errorf("DocumentCount(%s) = %d, want %d", id, f.DocumentCount, want)
	}
}
