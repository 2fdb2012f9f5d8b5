// Package registry holds the process-wide mapping from key type URLs to the
// KeyManager implementations that can instantiate them.
//
// Lifecycle: empty at process start, populated only by explicit Register
// calls from the embedding application, read-only in steady state. There is
// no implicit discovery; a keyset referencing an unregistered type URL fails
// at assembly time. Application code must not depend on lookups succeeding
// before its own registration calls have completed.
package registry

import (
	"fmt"
	"reflect"
	"sync"

	"xdao.co/keyring"
)

var (
	mu          sync.RWMutex
	keyManagers = map[string]keyring.KeyManager{}
)

// Register binds km's type URL to km.
//
// Re-registering an equivalent manager (same concrete implementation type)
// is a no-op; registering a different implementation under an already-bound
// type URL fails with KindRegistrationConflict.
func Register(km keyring.KeyManager) error {
	if km == nil {
		return keyring.NewError(keyring.KindInternal, "registry: nil key manager")
	}
	typeURL := km.TypeURL()
	if typeURL == "" {
		return keyring.NewError(keyring.KindInternal, "registry: key manager has empty type URL")
	}

	mu.Lock()
	defer mu.Unlock()
	existing, ok := keyManagers[typeURL]
	if ok {
		if reflect.TypeOf(existing) == reflect.TypeOf(km) {
			return nil
		}
		return keyring.NewError(keyring.KindRegistrationConflict,
			fmt.Sprintf("registry: type URL %q already bound to %T", typeURL, existing))
	}
	keyManagers[typeURL] = km
	return nil
}

// MustRegister is like Register but panics on error. Intended for use in
// application startup paths where a registration failure is a defect.
func MustRegister(km keyring.KeyManager) {
	if err := Register(km); err != nil {
		panic(err)
	}
}

// Lookup returns the key manager bound to typeURL.
func Lookup(typeURL string) (keyring.KeyManager, error) {
	mu.RLock()
	km, ok := keyManagers[typeURL]
	mu.RUnlock()
	if !ok {
		return nil, keyring.NewError(keyring.KindUnknownTypeURL,
			fmt.Sprintf("registry: no key manager for type URL %q", typeURL))
	}
	return km, nil
}

// Primitive resolves the manager for typeURL and produces a Primitive from
// serializedKey.
func Primitive(typeURL string, serializedKey []byte) (keyring.Primitive, error) {
	km, err := Lookup(typeURL)
	if err != nil {
		return keyring.Primitive{}, err
	}
	return km.Primitive(serializedKey)
}

// NewKey generates fresh key bytes for the template's type URL.
func NewKey(template keyring.KeyTemplate) ([]byte, error) {
	km, err := Lookup(template.TypeURL)
	if err != nil {
		return nil, err
	}
	return km.NewKey(template.Value)
}

// NewKeyData generates fresh key bytes for the template and wraps them in a
// KeyData carrying the manager's type URL and material kind.
func NewKeyData(template keyring.KeyTemplate) (keyring.KeyData, error) {
	km, err := Lookup(template.TypeURL)
	if err != nil {
		return keyring.KeyData{}, err
	}
	return keyring.NewKeyData(km, template.Value)
}
