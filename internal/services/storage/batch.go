package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"
)

type UploadFile struct {
	Data        []byte
	Filename    string
	ContentType string
}

// uploader is the single-file upload step UploadMultiple fans out over.
type uploader func(ctx context.Context, buffer *bytes.Buffer, filename, contentType string) (string, error)

// UploadMultiple uploads files concurrently. URLs are returned in input
// order; on partial failure the successful URLs are returned with an error.
func (s *StorageService) UploadMultiple(ctx context.Context, files []UploadFile) ([]string, error) {
	return uploadMultiple(ctx, files, s.Upload)
}

func uploadMultiple(ctx context.Context, files []UploadFile, upload uploader) ([]string, error) {
	if len(files) == 0 {
		return []string{}, nil
	}

	urls := make([]string, len(files))
	errors := make([]error, len(files))

	numWorkers := 5
	if len(files) < numWorkers {
		numWorkers = len(files)
	}

	jobs := make(chan int, len(files))
	var wg sync.WaitGroup

	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				buffer := bytes.NewBuffer(files[i].Data)
				url, err := upload(ctx, buffer, files[i].Filename, files[i].ContentType)
				urls[i] = url
				errors[i] = err
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()

	var failedUploads []string
	successUrls := make([]string, 0, len(files))

	for i, err := range errors {
		if err != nil {
			failedUploads = append(failedUploads, fmt.Sprintf("file %d: %v", i, err))
		} else {
			successUrls = append(successUrls, urls[i])
		}
	}

	if len(failedUploads) > 0 {
		return successUrls, fmt.Errorf("failed to upload %d files: %s",
			len(failedUploads), strings.Join(failedUploads, "; "))
	}

	return urls, nil
}
