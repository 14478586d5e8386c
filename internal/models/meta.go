package models

// Metadata keys reconciled for every imported user. The set is fixed: keys
// are inserted when missing and, except for telefono, left untouched once
// set. Only telefono follows the roster on later imports.
const (
	MetaKeyNickname     = "nickname"
	MetaKeyDNI          = "dni"
	MetaKeyPhone        = "telefono"
	MetaKeyOldUser      = "old_user"
	MetaKeyCapabilities = "wp_capabilities"
	MetaKeyUserLevel    = "wp_user_level"
	MetaKeyAdminBar     = "show_admin_bar_front"
)

// SubscriberCapabilities is the serialized wp_capabilities value for a
// plain subscriber account.
const SubscriberCapabilities = `a:1:{s:10:"subscriber";b:1;}`

// MetaEntry is one wp_usermeta row. Uniqueness is (UserID, Key).
type MetaEntry struct {
	UserID int64  `json:"user_id" db:"user_id"`
	Key    string `json:"key" db:"meta_key"`
	Value  string `json:"value" db:"meta_value"`
}
