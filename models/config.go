package models

// ConfigKeyQRCodePath stores the public URL of the payment QR image.
const ConfigKeyQRCodePath = "qr_code_path"
