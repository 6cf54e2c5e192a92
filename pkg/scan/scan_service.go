package scan

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"

	"github.com/carnegieJiang/pocketfridge/domain"
	"github.com/carnegieJiang/pocketfridge/entities"
	"github.com/carnegieJiang/pocketfridge/internal/utils/storage"
)

type (
	ScanService interface {
		UploadReceipt(ctx context.Context, image *multipart.FileHeader) (domain.UploadReceiptResponse, error)
		GetScan(ctx context.Context, id string) (domain.ReceiptScanResponse, error)
	}

	scanService struct {
		extractor Extractor
		s3        storage.AwsS3

		mu    sync.RWMutex
		scans map[string]*entities.ReceiptScan
	}
)

func NewScanService(extractor Extractor, s3 storage.AwsS3) ScanService {
	return &scanService{
		extractor: extractor,
		s3:        s3,
		scans:     make(map[string]*entities.ReceiptScan),
	}
}

// UploadReceipt stores the image, registers a pending scan record and hands
// the image to the extraction service in the background. The scan ID lets
// the client poll for results and later confirm them into the fridge.
func (s *scanService) UploadReceipt(_ context.Context, image *multipart.FileHeader) (domain.UploadReceiptResponse, error) {
	file, err := image.Open()
	if err != nil {
		return domain.UploadReceiptResponse{}, err
	}
	defer file.Close()

	imageBytes, err := io.ReadAll(file)
	if err != nil {
		return domain.UploadReceiptResponse{}, err
	}

	scanID := uuid.New()
	fileName := fmt.Sprintf("receipt-%s", scanID.String())
	objectKey, err := s.s3.UploadFile(fileName, image, "receipts", storage.AllowImage...)
	if err != nil {
		return domain.UploadReceiptResponse{}, err
	}
	imageURL := s.s3.GetPublicLinkKey(objectKey)

	record := &entities.ReceiptScan{
		ID:        scanID,
		ImageURL:  imageURL,
		Status:    "Pending",
		CreatedAt: time.Now(),
	}
	s.mu.Lock()
	s.scans[scanID.String()] = record
	s.mu.Unlock()

	mimeType := image.Header.Get("Content-Type")

	go func() {
		items, err := s.extractor.ExtractItems(context.Background(), imageBytes, mimeType)
		if err != nil {
			log.Errorf("receipt scan %s failed: %v", scanID, err)
			s.setScanResult(scanID.String(), "Failed", err.Error())
			return
		}

		// An empty extraction is a legitimate outcome, not a failure.
		resultsJSON, _ := json.Marshal(items)
		s.setScanResult(scanID.String(), "Processed", string(resultsJSON))
	}()

	return domain.UploadReceiptResponse{
		ScanID:   scanID.String(),
		ImageURL: imageURL,
		Status:   "Pending",
	}, nil
}

func (s *scanService) setScanResult(id, status, results string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if record, ok := s.scans[id]; ok {
		record.Status = status
		record.Results = results
	}
}

func (s *scanService) GetScan(_ context.Context, id string) (domain.ReceiptScanResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ReceiptScanResponse{}, domain.ErrParseUUID
	}

	s.mu.RLock()
	record, ok := s.scans[id]
	s.mu.RUnlock()
	if !ok {
		return domain.ReceiptScanResponse{}, domain.ErrInvalidReceiptScan
	}

	res := domain.ReceiptScanResponse{
		ScanID:   record.ID.String(),
		ImageURL: record.ImageURL,
		Status:   record.Status,
	}
	if record.Status == "Processed" && record.Results != "" {
		if err := json.Unmarshal([]byte(record.Results), &res.Items); err != nil {
			return domain.ReceiptScanResponse{}, domain.ErrScanNotProcessed
		}
	}
	return res, nil
}
