package handlers

import "testing"

func TestDiscardRemotePDFIgnoresLocalFiles(t *testing.T) {
	// Nil and local-disk paths never reach object storage.
	discardRemotePDF(nil)
	local := "/var/pdfs/bills/bill_KVL202600001.pdf"
	discardRemotePDF(&local)
}
