// Package ethaddr генерирует псевдослучайные hex-идентификаторы в формате
// Ethereum: 40-символьные адреса и 64-символьные хэши транзакций.
//
// Значения криптографического смысла не несут — это заглушки для
// мок-контрактов, у которых нет реального блокчейна за спиной.
package ethaddr

import (
	"crypto/rand"
	"encoding/hex"
)

// NewAddress возвращает строку вида 0x + 40 hex-символов.
func NewAddress() string {
	return randomHex(20)
}

// NewTxHash возвращает строку вида 0x + 64 hex-символа.
func NewTxHash() string {
	return randomHex(32)
}

func randomHex(n int) string {
	buf := make([]byte, n)
	// crypto/rand.Read заполняет буфер целиком и не возвращает ошибку.
	_, _ = rand.Read(buf)
	return "0x" + hex.EncodeToString(buf)
}
