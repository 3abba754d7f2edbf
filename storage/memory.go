package storage

import (
	"context"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"vaultdrive/models"
)

// MemoryStore is a map-backed HierarchyStore for tests and local development.
// It mirrors the Mongo backend's semantics: owner-scoped lookups, newest-first
// listings, per-call atomicity and nothing stronger.
type MemoryStore struct {
	mu      sync.RWMutex
	folders map[primitive.ObjectID]models.Folder
	files   map[primitive.ObjectID]models.File
	seq     map[primitive.ObjectID]int64
	nextSeq int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		folders: make(map[primitive.ObjectID]models.Folder),
		files:   make(map[primitive.ObjectID]models.File),
		seq:     make(map[primitive.ObjectID]int64),
	}
}

func (s *MemoryStore) InsertFolder(_ context.Context, folder *models.Folder) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if folder.ID.IsZero() {
		folder.ID = primitive.NewObjectID()
	}
	s.folders[folder.ID] = *folder
	s.nextSeq++
	s.seq[folder.ID] = s.nextSeq
	return nil
}

func (s *MemoryStore) GetFolder(_ context.Context, ownerID, folderID primitive.ObjectID) (*models.Folder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	folder, ok := s.folders[folderID]
	if !ok || folder.OwnerID != ownerID {
		return nil, ErrNotFound
	}
	return &folder, nil
}

func (s *MemoryStore) FindFolderByName(_ context.Context, ownerID primitive.ObjectID, parentID *primitive.ObjectID, name string) (*models.Folder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, folder := range s.folders {
		if folder.OwnerID != ownerID || folder.Name != name {
			continue
		}
		if sameParent(folder.ParentID, parentID) {
			f := folder
			return &f, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) ListChildFolders(_ context.Context, folderID primitive.ObjectID) ([]models.Folder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var folders []models.Folder
	for _, folder := range s.folders {
		if folder.ParentID != nil && *folder.ParentID == folderID {
			folders = append(folders, folder)
		}
	}
	sort.Slice(folders, func(i, j int) bool {
		return s.seq[folders[i].ID] > s.seq[folders[j].ID]
	})
	return folders, nil
}

func (s *MemoryStore) ListChildFiles(_ context.Context, folderID primitive.ObjectID) ([]models.File, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var files []models.File
	for _, file := range s.files {
		if file.FolderID == folderID {
			files = append(files, file)
		}
	}
	sort.Slice(files, func(i, j int) bool {
		return s.seq[files[i].ID] > s.seq[files[j].ID]
	})
	return files, nil
}

func (s *MemoryStore) UpdateFolderName(_ context.Context, ownerID, folderID primitive.ObjectID, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	folder, ok := s.folders[folderID]
	if !ok || folder.OwnerID != ownerID {
		return ErrNotFound
	}
	folder.Name = name
	s.folders[folderID] = folder
	return nil
}

func (s *MemoryStore) UpdateFolderParent(_ context.Context, ownerID, folderID primitive.ObjectID, parentID *primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	folder, ok := s.folders[folderID]
	if !ok || folder.OwnerID != ownerID {
		return ErrNotFound
	}
	if parentID != nil {
		p := *parentID
		folder.ParentID = &p
	} else {
		folder.ParentID = nil
	}
	s.folders[folderID] = folder
	return nil
}

func (s *MemoryStore) DeleteFolder(_ context.Context, ownerID, folderID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	folder, ok := s.folders[folderID]
	if !ok || folder.OwnerID != ownerID {
		return ErrNotFound
	}
	delete(s.folders, folderID)
	delete(s.seq, folderID)
	return nil
}

func (s *MemoryStore) InsertFile(_ context.Context, file *models.File) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if file.ID.IsZero() {
		file.ID = primitive.NewObjectID()
	}
	s.files[file.ID] = *file
	s.nextSeq++
	s.seq[file.ID] = s.nextSeq
	return nil
}

func (s *MemoryStore) GetFile(_ context.Context, ownerID, fileID primitive.ObjectID) (*models.File, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	file, ok := s.files[fileID]
	if !ok || file.OwnerID != ownerID {
		return nil, ErrNotFound
	}
	return &file, nil
}

func (s *MemoryStore) UpdateFileName(_ context.Context, ownerID, fileID primitive.ObjectID, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	file, ok := s.files[fileID]
	if !ok || file.OwnerID != ownerID {
		return ErrNotFound
	}
	file.Name = name
	s.files[fileID] = file
	return nil
}

func (s *MemoryStore) UpdateFileFolder(_ context.Context, ownerID, fileID, folderID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	file, ok := s.files[fileID]
	if !ok || file.OwnerID != ownerID {
		return ErrNotFound
	}
	file.FolderID = folderID
	s.files[fileID] = file
	return nil
}

func (s *MemoryStore) DeleteFile(_ context.Context, ownerID, fileID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	file, ok := s.files[fileID]
	if !ok || file.OwnerID != ownerID {
		return ErrNotFound
	}
	delete(s.files, fileID)
	delete(s.seq, fileID)
	return nil
}

func sameParent(a, b *primitive.ObjectID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// MemoryBlobStore is a map-backed BlobStore. It counts Delete calls per ref
// so callers can verify best-effort cleanup behavior.
type MemoryBlobStore struct {
	mu      sync.Mutex
	blobs   map[string][]byte
	deletes map[string]int
}

func NewMemoryBlobStore() *MemoryBlobStore {
	return &MemoryBlobStore{
		blobs:   make(map[string][]byte),
		deletes: make(map[string]int),
	}
}

func (s *MemoryBlobStore) Store(_ context.Context, data []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ref := primitive.NewObjectID().Hex()
	buf := make([]byte, len(data))
	copy(buf, data)
	s.blobs[ref] = buf
	return ref, nil
}

// Put registers data under a caller-chosen ref.
func (s *MemoryBlobStore) Put(ref string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	buf := make([]byte, len(data))
	copy(buf, data)
	s.blobs[ref] = buf
}

func (s *MemoryBlobStore) Get(_ context.Context, ref string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.blobs[ref]
	if !ok {
		return nil, ErrNotFound
	}
	return data, nil
}

func (s *MemoryBlobStore) Delete(_ context.Context, ref string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deletes[ref]++
	delete(s.blobs, ref)
	return nil
}

func (s *MemoryBlobStore) URL(_ context.Context, ref string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.blobs[ref]; !ok {
		return "", ErrNotFound
	}
	return "memory://" + ref, nil
}

// DeleteCalls reports how many times Delete has been invoked for ref,
// including no-op deletes of refs that were already gone.
func (s *MemoryBlobStore) DeleteCalls(ref string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deletes[ref]
}

// Exists reports whether ref currently resolves.
func (s *MemoryBlobStore) Exists(ref string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.blobs[ref]
	return ok
}
