package handlers

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"kvltransport/apperr"
	"kvltransport/repository"
	"kvltransport/utils"
)

// PDFHandler renders consignment notes, freight bills and load chalans to
// PDF, serves the bytes, and keeps a copy on disk (and in object storage
// when configured).
type PDFHandler struct {
	Repo     *repository.PDFRepository
	SavePath string
}

func (h *PDFHandler) ConsignmentNote(w http.ResponseWriter, r *http.Request, id string) {
	pdfBytes, err := utils.GenerateConsignmentNotePDF(h.Repo, id)
	if err != nil {
		writeError(w, apperr.Internal("failed to generate consignment note", err))
		return
	}
	if pdfBytes == nil {
		writeError(w, apperr.NotFound("consignment not found"))
		return
	}

	cons, _ := h.Repo.GetConsignmentForPDF(id)
	filename := fmt.Sprintf("consignment_%s.pdf", id)
	if cons != nil {
		filename = fmt.Sprintf("consignment_%s.pdf", cons.ConsignmentNumber)
	}

	storedPath := h.persist(pdfBytes, "consignments", filename)
	if cons != nil {
		now := time.Now().UTC()
		cons.PdfCreatedAt = &now
		if storedPath != "" {
			cons.PdfPath = &storedPath
		}
		if err := h.Repo.ConsignmentRepo.Update(cons); err != nil {
			log.Printf("failed to stamp pdf metadata on consignment %s: %v", id, err)
		}
	}

	servePDF(w, filename, pdfBytes)
}

func (h *PDFHandler) FreightBill(w http.ResponseWriter, r *http.Request, id string) {
	pdfBytes, err := utils.GenerateFreightBillPDF(h.Repo, id)
	if err != nil {
		writeError(w, apperr.Internal("failed to generate freight bill pdf", err))
		return
	}
	if pdfBytes == nil {
		writeError(w, apperr.NotFound("freight bill not found"))
		return
	}

	bill, _ := h.Repo.GetBillForPDF(id)
	filename := fmt.Sprintf("bill_%s.pdf", id)
	if bill != nil {
		filename = fmt.Sprintf("bill_%s.pdf", bill.BillNumber)
	}

	storedPath := h.persist(pdfBytes, "bills", filename)
	if bill != nil {
		now := time.Now().UTC()
		bill.PdfCreatedAt = &now
		if storedPath != "" {
			bill.PdfPath = &storedPath
		}
		if err := h.Repo.BillRepo.Update(bill); err != nil {
			log.Printf("failed to stamp pdf metadata on bill %s: %v", id, err)
		}
	}

	servePDF(w, filename, pdfBytes)
}

func (h *PDFHandler) LoadChalan(w http.ResponseWriter, r *http.Request, id string) {
	pdfBytes, err := utils.GenerateLoadChalanPDF(h.Repo, id)
	if err != nil {
		writeError(w, apperr.Internal("failed to generate chalan pdf", err))
		return
	}
	if pdfBytes == nil {
		writeError(w, apperr.NotFound("chalan not found"))
		return
	}

	chalan, _ := h.Repo.GetChalanForPDF(id)
	filename := fmt.Sprintf("chalan_%s.pdf", id)
	if chalan != nil {
		filename = fmt.Sprintf("chalan_%s.pdf", chalan.ChalanNumber)
	}

	storedPath := h.persist(pdfBytes, "chalans", filename)
	if chalan != nil {
		now := time.Now().UTC()
		chalan.PdfCreatedAt = &now
		if storedPath != "" {
			chalan.PdfPath = &storedPath
		}
		if err := h.Repo.ChalanRepo.Update(chalan); err != nil {
			log.Printf("failed to stamp pdf metadata on chalan %s: %v", id, err)
		}
	}

	servePDF(w, filename, pdfBytes)
}

// persist writes the PDF to the local save directory and, when object
// storage is configured, uploads a copy there. Returns the stored location,
// preferring the public URL; failures are logged, never surfaced to the
// caller who already has the bytes.
func (h *PDFHandler) persist(pdfBytes []byte, docType, filename string) string {
	stored := ""

	dir := filepath.Join(h.SavePath, docType)
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Printf("failed to create pdf directory %s: %v", dir, err)
	} else {
		localPath := filepath.Join(dir, filename)
		if err := os.WriteFile(localPath, pdfBytes, 0644); err != nil {
			log.Printf("failed to save pdf %s: %v", localPath, err)
		} else {
			stored = localPath
		}
	}

	if utils.R2Configured() {
		url, err := utils.UploadPDFToR2(pdfBytes, docType, filename)
		if err != nil {
			log.Printf("failed to upload pdf %s: %v", filename, err)
		} else {
			stored = url
		}
	}

	return stored
}

// discardRemotePDF removes an uploaded document when its record goes away.
// Best effort: local copies stay on disk, and a path that never reached
// object storage has nothing to remove.
func discardRemotePDF(pdfPath *string) {
	if pdfPath == nil || !strings.HasPrefix(*pdfPath, "http") || !utils.R2Configured() {
		return
	}
	if err := utils.DeleteFromR2(*pdfPath); err != nil {
		log.Printf("failed to delete pdf %s from object storage: %v", *pdfPath, err)
	}
}

func servePDF(w http.ResponseWriter, filename string, pdfBytes []byte) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdfBytes)
}
