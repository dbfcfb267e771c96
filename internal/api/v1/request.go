package v1

const headerSignature = "X-Signature"
