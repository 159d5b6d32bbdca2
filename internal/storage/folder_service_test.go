package storage

import (
	"encoding/json"
	"os"
	"testing"
	"time"
)

func TestFolderSeedDefaults(t *testing.T) {
	_, _, folders, _ := newTestServices(t)
	ctx := testCtx(t)

	if err := folders.SeedDefaults(ctx); err != nil {
		t.Fatalf("SeedDefaults failed: %v", err)
	}
	roots, err := folders.ListRoot(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(roots) != 2 {
		t.Fatalf("len = %d, want 2", len(roots))
	}
	names := map[string]bool{}
	for _, f := range roots {
		names[f.Name] = true
		if f.DocumentCount != 0 {
			t.Errorf("DocumentCount = %d, want 0", f.DocumentCount)
		}
	}
	if !names["Notes"] || !names["Journal"] {
		t.Errorf("seeded names = %v, want Notes and Journal", names)
	}

	// Seeding again must not duplicate.
	if err := folders.SeedDefaults(ctx); err != nil {
		t.Fatal(err)
	}
	roots, _ = folders.ListRoot(ctx)
	if len(roots) != 2 {
		t.Errorf("after reseed len = %d, want 2", len(roots))
	}
}

func TestFolderSeedSkippedWhenFoldersExist(t *testing.T) {
	_, _, folders, _ := newTestServices(t)
	ctx := testCtx(t)

	if _, err := folders.Create(ctx, "Existing", ""); err != nil {
		t.Fatal(err)
	}
	if err := folders.SeedDefaults(ctx); err != nil {
		t.Fatal(err)
	}
	roots, _ := folders.ListRoot(ctx)
	if len(roots) != 1 {
		t.Errorf("len = %d, want 1 (no defaults seeded)", len(roots))
	}
}

func TestFolderListRootOrderAndFiltering(t *testing.T) {
	_, _, folders, _ := newTestServices(t)
	ctx := testCtx(t)

	a, err := folders.Create(ctx, "A", "")
	if err != nil {
		t.Fatal(err)
	}
	b, err := folders.Create(ctx, "B", "")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := folders.Create(ctx, "Child", a.ID); err != nil {
		t.Fatal(err)
	}
	// Make creation order unambiguous.
	a.CreatedAt = time.Now().Add(-time.Hour)
	if err := folders.write(a); err != nil {
		t.Fatal(err)
	}

	roots, err := folders.ListRoot(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(roots) != 2 {
		t.Fatalf("len = %d, want 2 (child excluded)", len(roots))
	}
	if roots[0].ID != a.ID || roots[1].ID != b.ID {
		t.Errorf("order = [%s %s], want oldest first", roots[0].Name, roots[1].Name)
	}
}

func TestFolderCreateRejectsEmptyName(t *testing.T) {
	_, _, folders, _ := newTestServices(t)
	ctx := testCtx(t)

	for _, name := range []string{"", "   ", `<>:"/\|?*`} {
		if _, err := folders.Create(ctx, name, ""); err != ErrEmptyFolderName {
			t.Errorf("Create(%q) err = %v, want ErrEmptyFolderName", name, err)
		}
	}
}

func TestFolderRename(t *testing.T) {
	_, _, folders, _ := newTestServices(t)
	ctx := testCtx(t)

	f, err := folders.Create(ctx, "Drafts", "")
	if err != nil {
		t.Fatal(err)
	}
	renamed, err := folders.Rename(ctx, f.ID, "  Pub/lished  ")
	if err != nil {
		t.Fatalf("Rename failed: %v", err)
	}
	if renamed.Name != "Published" {
		t.Errorf("Name = %q, want %q", renamed.Name, "Published")
	}
	if _, err := folders.Rename(ctx, "folder_1700000000000_zzzzzz", "X"); err != ErrFolderNotFound {
		t.Errorf("err = %v, want ErrFolderNotFound", err)
	}
}

func TestFolderGetReconcilesCount(t *testing.T) {
	_, docs, folders, _ := newTestServices(t)
	ctx := testCtx(t)

	f, err := folders.Create(ctx, "Inbox", "")
	if err != nil {
		t.Fatal(err)
	}
	doc, err := docs.Create(ctx, "Mail", nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := docs.Move(ctx, doc.ID, &f.ID); err != nil {
		t.Fatal(err)
	}

	// Corrupt the cached count to simulate drift.
	stale, _ := folders.load(f.ID)
	stale.DocumentCount = 42
	if err := folders.write(stale); err != nil {
		t.Fatal(err)
	}

	detail, err := folders.Get(ctx, f.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if detail.Folder.DocumentCount != 1 {
		t.Errorf("DocumentCount = %d, want 1 after reconciliation", detail.Folder.DocumentCount)
	}
	if len(detail.Documents) != 1 || detail.Documents[0].ID != doc.ID {
		t.Errorf("Documents = %v, want the moved document", detail.Documents)
	}
	// Reconciled value must be persisted.
	persisted, _ := folders.load(f.ID)
	if persisted.DocumentCount != 1 {
		t.Errorf("persisted DocumentCount = %d, want 1", persisted.DocumentCount)
	}
}

func TestFolderGetChildren(t *testing.T) {
	_, _, folders, _ := newTestServices(t)
	ctx := testCtx(t)

	parent, err := folders.Create(ctx, "Parent", "")
	if err != nil {
		t.Fatal(err)
	}
	child, err := folders.Create(ctx, "Child", parent.ID)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := folders.Create(ctx, "Stranger", ""); err != nil {
		t.Fatal(err)
	}

	detail, err := folders.Get(ctx, parent.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(detail.Subfolders) != 1 || detail.Subfolders[0].ID != child.ID {
		t.Errorf("Subfolders = %v, want only the child", detail.Subfolders)
	}
}

func TestFolderDeleteCascade(t *testing.T) {
	paths, docs, folders, _ := newTestServices(t)
	ctx := testCtx(t)

	top, err := folders.Create(ctx, "Top", "")
	if err != nil {
		t.Fatal(err)
	}
	sub, err := folders.Create(ctx, "Sub", top.ID)
	if err != nil {
		t.Fatal(err)
	}
	var docIDs []string
	for _, spec := range []struct {
		title  string
		folder string
	}{
		{"In Top 1", top.ID},
		{"In Top 2", top.ID},
		{"In Sub", sub.ID},
	} {
		d, err := docs.Create(ctx, spec.title, nil)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := docs.Move(ctx, d.ID, &spec.folder); err != nil {
			t.Fatal(err)
		}
		docIDs = append(docIDs, d.ID)
	}
	outsider, err := docs.Create(ctx, "Bystander", nil)
	if err != nil {
		t.Fatal(err)
	}

	if err := folders.Delete(ctx, top.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	for _, id := range docIDs {
		if _, err := os.Stat(paths.ContentFile(id)); !os.IsNotExist(err) {
			t.Errorf("content %s still exists", id)
		}
		if _, err := os.Stat(paths.MetadataFile(id)); !os.IsNotExist(err) {
			t.Errorf("metadata %s still exists", id)
		}
	}
	for _, id := range []string{top.ID, sub.ID} {
		if _, err := os.Stat(paths.FolderFile(id)); !os.IsNotExist(err) {
			t.Errorf("folder record %s still exists", id)
		}
	}
	if _, err := docs.Get(ctx, outsider.ID); err != nil {
		t.Errorf("document outside the tree was deleted: %v", err)
	}
}

func TestFolderDeleteNotFound(t *testing.T) {
	_, _, folders, _ := newTestServices(t)
	if err := folders.Delete(testCtx(t), "folder_1700000000000_zzzzzz"); err != ErrFolderNotFound {
		t.Errorf("err = %v, want ErrFolderNotFound", err)
	}
}

func TestFolderDeleteTerminatesOnParentCycle(t *testing.T) {
	paths, _, folders, _ := newTestServices(t)
	ctx := testCtx(t)

	// Manufacture two records that claim each other as parent. The traversal
	// must terminate and remove both.
	a := &Folder{ID: NewFolderID(), Name: "A", CreatedAt: time.Now(), ModifiedAt: time.Now()}
	b := &Folder{ID: NewFolderID(), Name: "B", CreatedAt: time.Now(), ModifiedAt: time.Now()}
	a.ParentFolderID = b.ID
	b.ParentFolderID = a.ID
	for _, f := range []*Folder{a, b} {
		data, _ := json.Marshal(f)
		if err := os.WriteFile(paths.FolderFile(f.ID), data, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	done := make(chan error, 1)
	go func() { done <- folders.Delete(ctx, a.ID) }()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Delete did not terminate on a parent cycle")
	}

	for _, f := range []*Folder{a, b} {
		if _, err := os.Stat(paths.FolderFile(f.ID)); !os.IsNotExist(err) {
			t.Errorf("folder record %s still exists", f.ID)
		}
	}
}
