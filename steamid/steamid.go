// Package steamid provides the identifier types shared by the platform
// facets and the callback payloads.
//
// An ID is the 64-bit account identifier (SteamID64) carried in
// persona-state-change notifications. It can be rendered and parsed in the
// three textual forms in common use:
//
//	id, err := steamid.Parse("STEAM_0:1:25939975")
//	fmt.Println(id)          // 76561198012145679
//	fmt.Println(id.Steam2()) // STEAM_0:1:25939975
//	fmt.Println(id.Steam3()) // [U:1:51879951]
package steamid

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// individualBase is the SteamID64 of account number zero in the public
// universe for individual accounts.
const individualBase uint64 = 76561197960265728

const (
	universePublic    = 1
	accountIndividual = 1
)

// ErrInvalidID is returned by Parse for input in none of the known forms.
var ErrInvalidID = errors.New("invalid steam id")

// ID is a SteamID64: universe in the top 8 bits, account type in the next
// 4, instance in the next 20 and the account number in the low 32.
type ID uint64

// AppID identifies an application on the platform.
type AppID uint32

// Parse parses a SteamID in SteamID64, STEAM_X:Y:Z or [U:1:Z] form. The
// textual forms must describe an individual account in the public universe.
func Parse(s string) (ID, error) {
	switch {
	case strings.HasPrefix(s, "STEAM_"):
		return parseSteam2(s)
	case strings.HasPrefix(s, "["):
		return parseSteam3(s)
	}

	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidID, s)
	}
	return ID(v), nil
}

// parseSteam2 accepts STEAM_X:Y:Z where X is 0 or 1 (both denote the public
// universe), Y is the low account bit and Z the rest of the account number.
func parseSteam2(s string) (ID, error) {
	parts := strings.Split(strings.TrimPrefix(s, "STEAM_"), ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidID, s)
	}
	x, errX := strconv.ParseUint(parts[0], 10, 8)
	y, errY := strconv.ParseUint(parts[1], 10, 1)
	z, errZ := strconv.ParseUint(parts[2], 10, 31)
	if errX != nil || errY != nil || errZ != nil || x > universePublic {
		return 0, fmt.Errorf("%w: %q", ErrInvalidID, s)
	}
	return ID(individualBase + z*2 + y), nil
}

func parseSteam3(s string) (ID, error) {
	if !strings.HasSuffix(s, "]") {
		return 0, fmt.Errorf("%w: %q", ErrInvalidID, s)
	}
	parts := strings.Split(s[1:len(s)-1], ":")
	if len(parts) != 3 || parts[0] != "U" || parts[1] != strconv.Itoa(universePublic) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidID, s)
	}
	z, err := strconv.ParseUint(parts[2], 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidID, s)
	}
	return ID(individualBase + z), nil
}

// Uint64 returns the raw 64-bit value.
func (id ID) Uint64() uint64 {
	return uint64(id)
}

// Universe returns the universe the id belongs to.
func (id ID) Universe() uint8 {
	return uint8(uint64(id) >> 56)
}

// AccountType returns the 4-bit account type (1 individual, 7 clan, ...).
func (id ID) AccountType() uint8 {
	return uint8(uint64(id)>>52) & 0xf
}

// IsIndividual reports whether the id names an individual user account.
func (id ID) IsIndividual() bool {
	return id.AccountType() == accountIndividual && id.Universe() != 0
}

// AccountID returns the 32-bit account number.
func (id ID) AccountID() uint32 {
	return uint32(id)
}

// String formats the id as SteamID64.
func (id ID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// Steam2 formats the id as STEAM_0:Y:Z.
func (id ID) Steam2() string {
	account := id.AccountID()
	return fmt.Sprintf("STEAM_0:%d:%d", account%2, account/2)
}

// Steam3 formats the id as [U:1:Z].
func (id ID) Steam3() string {
	return fmt.Sprintf("[U:1:%d]", id.AccountID())
}

func (a AppID) String() string {
	return strconv.FormatUint(uint64(a), 10)
}
