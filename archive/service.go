package archive

import (
	"io"
	"sync"
)

// ArchiveService opens the sound archive for the other services
type ArchiveService struct {
	path     string
	fallback func() (Archive, error)

	mu      sync.Mutex
	archive Archive
}

// NewService creates the archive service
// With an empty path the fallback provides the archive instead
func NewService(path string, fallback func() (Archive, error)) *ArchiveService {
	return &ArchiveService{path: path, fallback: fallback}
}

// Name implements Service
func (s *ArchiveService) Name() string {
	return "archive"
}

// Dependencies implements Service
func (s *ArchiveService) Dependencies() []string {
	return nil
}

// Init implements Service
func (s *ArchiveService) Init(args ...any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.archive != nil {
		return nil
	}

	if s.path == "" && s.fallback != nil {
		a, err := s.fallback()
		if err != nil {
			return err
		}
		log.Infof("Using built-in placeholder sounds")
		s.archive = a
		return nil
	}

	a, err := Open(s.path)
	if err != nil {
		return err
	}
	s.archive = a
	return nil
}

// Start implements Service
func (s *ArchiveService) Start() error {
	return nil
}

// Stop implements Service
func (s *ArchiveService) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.archive.(io.Closer); ok {
		if err := c.Close(); err != nil {
			log.Warnf("Archive close: %v", err)
		}
	}
	s.archive = nil
	return nil
}

// Archive returns the open archive, nil before Init
func (s *ArchiveService) Archive() Archive {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.archive
}
