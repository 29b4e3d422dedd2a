package media

import (
	"fmt"
	"image"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"gorm.io/gorm"

	catalogRepo "brickstock.GO/model/repository/catalog"
)

const (
	thumbWidth  = 192
	thumbHeight = 192
	webpQuality = 80
)

// Service downloads part images and keeps webp thumbnails under dir.
// Thumbnails are named <shapeKey>.webp; existing files are not regenerated.
type Service struct {
	db   *gorm.DB
	dir  string
	http *http.Client
}

func NewService(db *gorm.DB, dir string) *Service {
	return &Service{
		db:   db,
		dir:  dir,
		http: &http.Client{Timeout: 30 * time.Second},
	}
}

// CacheAll generates thumbnails for every part that carries an image URL.
// Failures are logged and skipped; returns the number of thumbnails written.
func (s *Service) CacheAll() (int, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return 0, fmt.Errorf("media: create dir %s: %w", s.dir, err)
	}

	parts, err := catalogRepo.NewCatalogRepository(s.db).PartsWithImages()
	if err != nil {
		return 0, fmt.Errorf("media: load parts: %w", err)
	}

	written := 0
	for i := range parts {
		p := &parts[i]
		path := s.ThumbPath(p.ShapeKey)
		if _, err := os.Stat(path); err == nil {
			continue
		}
		if err := s.cacheOne(p.ImageURL, path); err != nil {
			log.Printf("media: %s: %v", p.ShapeKey, err)
			continue
		}
		written++
	}
	return written, nil
}

// ThumbPath returns the thumbnail path for a shape key.
func (s *Service) ThumbPath(shapeKey string) string {
	return filepath.Join(s.dir, shapeKey+".webp")
}

func (s *Service) cacheOne(url, path string) error {
	img, err := s.fetch(url)
	if err != nil {
		return err
	}

	thumb := imaging.Fit(img, thumbWidth, thumbHeight, imaging.Lanczos)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := webp.Encode(f, thumb, &webp.Options{Quality: webpQuality}); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("encode: %w", err)
	}
	return f.Close()
}

func (s *Service) fetch(url string) (image.Image, error) {
	resp, err := s.http.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
	}
	img, err := imaging.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return img, nil
}
