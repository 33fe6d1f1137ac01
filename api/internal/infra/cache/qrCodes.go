package cache

// Qr codes are keyed by wallet address, one withdrawal address maps to
// one rendered image.

func SaveQrCode(address string, qrCode string) {
	QrCodeMap.Store(address, qrCode)
}

// returns qr code from cache
//
// if not found, returns an empty string ("")
func FindQrCode(address string) string {
	qrCode, ok := QrCodeMap.Load(address)
	if !ok {
		return ""
	}
	return qrCode.(string)
}
