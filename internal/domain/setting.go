package domain

// Setting is a key/value configuration row editable from the admin panel.
type Setting struct {
	KeyName  string `db:"key_name" json:"key_name"`
	KeyValue string `db:"key_value" json:"key_value"`
}
