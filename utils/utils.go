package utils

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/binary"
	"encoding/hex"
	"encoding/pem"
	"errors"
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/DrDelphi/EsdtLotteryBot/data"
	"github.com/ElrondNetwork/elrond-go-crypto/signing"
	"github.com/ElrondNetwork/elrond-go-crypto/signing/ed25519"
	"github.com/btcsuite/btcutil/bech32"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	"github.com/tyler-smith/go-bip39"
)

const hardened = uint32(0x80000000)

var (
	errInvalidAmount   = errors.New("invalid amount")
	errTooManyDecimals = errors.New("too many decimals")
)

type bip32Path []uint32

type bip32 struct {
	Key       []byte
	ChainCode []byte
}

func FormatTgUser(user *tgbotapi.User) string {
	name := fmt.Sprintf("%s %s [%v]", user.FirstName, user.LastName, user.ID)
	name = strings.TrimSpace(name)
	name = strings.Replace(name, "  ", " ", 1)
	if user.UserName != "" {
		name = fmt.Sprintf("@%s (%s)", user.UserName, name)
	}

	return name
}

func FormatDbTgUser(user *data.Telegram) string {
	if user.UserName != "" {
		return "@" + user.UserName
	}

	name := fmt.Sprintf("%s %s", user.FirstName, user.LastName)
	name = strings.TrimSpace(name)
	name = strings.Replace(name, "  ", " ", 1)
	name = fmt.Sprintf("[%s](tg://user?id=%v)", name, user.ID)

	return name
}

// GetPrivateKeyFromSeed derives the wallet with the given index from the
// mnemonic. Index 0 is the operator wallet, users get their telegram ID.
func GetPrivateKeyFromSeed(seedphrase string, index int64) []byte {
	seed := bip39.NewSeed(seedphrase, "")
	path := bip32Path{
		44 + hardened,
		508 + hardened,
		hardened,
		hardened + uint32(index>>32),
		hardened + uint32(index&0xFFFFFFFF),
	}
	keyData := derivePrivateKey(seed, path)

	return keyData.Key
}

func GetAddressFromPrivateKey(privBytes []byte) string {
	pubBytes, err := publicKeyFromPrivateKey(privBytes)
	if err != nil {
		return ""
	}
	b, _ := bech32.ConvertBits(pubBytes, 8, 5, true)
	s, _ := bech32.Encode(AddressHrp, b)

	return s
}

// PemFromPrivateKey renders a wallet key in the PEM layout the Elrond wallets
// import: the block holds hex(secret key) followed by hex(public key)
func PemFromPrivateKey(privBytes []byte) ([]byte, error) {
	pubBytes, err := publicKeyFromPrivateKey(privBytes)
	if err != nil {
		return nil, err
	}

	block := &pem.Block{
		Type:  "PRIVATE KEY for " + GetAddressFromPrivateKey(privBytes),
		Bytes: []byte(hex.EncodeToString(privBytes) + hex.EncodeToString(pubBytes)),
	}

	return pem.EncodeToMemory(block), nil
}

func publicKeyFromPrivateKey(privBytes []byte) ([]byte, error) {
	keyGen := signing.NewKeyGenerator(ed25519.NewEd25519())
	privKey, err := keyGen.PrivateKeyFromByteArray(privBytes)
	if err != nil {
		return nil, err
	}

	return privKey.GeneratePublic().ToByteArray()
}

func derivePrivateKey(seed []byte, path bip32Path) *bip32 {
	b := &bip32{}
	digest := hmac.New(sha512.New, []byte("ed25519 seed"))
	digest.Write(seed)
	intermediary := digest.Sum(nil)
	b.Key = intermediary[:32]
	b.ChainCode = intermediary[32:]
	for _, childIdx := range path {
		data := make([]byte, 1+32+4)
		data[0] = 0x00
		copy(data[1:1+32], b.Key)
		binary.BigEndian.PutUint32(data[1+32:1+32+4], childIdx)
		digest = hmac.New(sha512.New, b.ChainCode)
		digest.Write(data)
		intermediary = digest.Sum(nil)
		b.Key = intermediary[:32]
		b.ChainCode = intermediary[32:]
	}
	return b
}

// ParseAmount converts a decimal string like "1.25" into the smallest unit
func ParseAmount(s string, decimals int) (*big.Int, error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, ".")
	if s == "" || len(parts) > 2 || parts[0] == "" {
		return nil, errInvalidAmount
	}

	frac := ""
	if len(parts) == 2 {
		frac = parts[1]
		if frac == "" {
			return nil, errInvalidAmount
		}
	}
	if len(frac) > decimals {
		return nil, errTooManyDecimals
	}

	digits := parts[0] + frac + strings.Repeat("0", decimals-len(frac))
	for _, c := range digits {
		if c < '0' || c > '9' {
			return nil, errInvalidAmount
		}
	}

	amount, ok := big.NewInt(0).SetString(digits, 10)
	if !ok {
		return nil, errInvalidAmount
	}

	return amount, nil
}

// FormatAmount renders an amount of the smallest unit as a decimal string
// without trailing zeros
func FormatAmount(amount *big.Int, decimals int) string {
	if amount == nil {
		return "0"
	}

	sign := ""
	if amount.Sign() < 0 {
		sign = "-"
	}

	s := new(big.Int).Abs(amount).String()
	if len(s) <= decimals {
		s = strings.Repeat("0", decimals-len(s)+1) + s
	}

	intPart := s[:len(s)-decimals]
	fracPart := strings.TrimRight(s[len(s)-decimals:], "0")
	if fracPart == "" {
		return sign + intPart
	}

	return sign + intPart + "." + fracPart
}

func NicePrice(f float64, decimals int) string {
	s := fmt.Sprintf("%v", uint64(f))
	for idx := len(s) - 3; idx > 0; idx -= 3 {
		s = s[:idx] + "," + s[idx:]
	}
	if decimals > 0 {
		s += "."
	}
	for i := 0; i < decimals; i++ {
		f -= math.Trunc(f)
		f *= 10
		s += fmt.Sprintf("%v", uint64(f))
	}

	if decimals == -1 { // auto
		if math.Ceil(f) == f {
			return s
		}
		s += "."
		nnd := 0
		nndFound := false
		for i := 0; i < 18; i++ {
			f -= math.Trunc(f)
			f *= 10
			d := uint64(f)
			s += fmt.Sprintf("%v", d)
			if d != 0 && !nndFound {
				nndFound = true
			}
			if nndFound {
				nnd++
				if nnd >= 4 {
					for strings.HasSuffix(s, "0") {
						s = strings.TrimSuffix(s, "0")
					}
					s = strings.TrimSuffix(s, ".")
					break
				}
			}
		}
	}

	return s
}

// NiceAmount formats an eGLD amount of the smallest unit for chat messages
func NiceAmount(amount *big.Int) string {
	f, _ := new(big.Float).SetString(FormatAmount(amount, EgldDecimals))
	if f == nil {
		return "0"
	}
	value, _ := f.Float64()

	return NicePrice(value, -1)
}

func ShortenAddress(address string) string {
	l := len(address)
	if l < 14 {
		return ""
	}

	return address[:8] + "..." + address[l-6:]
}
