package api

import "time"

// Page is the envelope of list responses.
type Page[T any] struct {
	TotalCount int `json:"totalCount"`
	Results    []T `json:"results"`
}

type Computer struct {
	ID       string           `json:"id"`
	UDID     string           `json:"udid"`
	General  ComputerGeneral  `json:"general"`
	Hardware ComputerHardware `json:"hardware"`
}

type ComputerGeneral struct {
	Name         string `json:"name"`
	ManagementID string `json:"managementId"`
	AssetTag     string `json:"assetTag,omitempty"`
	Barcode1     string `json:"barcode1,omitempty"`
	Barcode2     string `json:"barcode2,omitempty"`
}

type ComputerHardware struct {
	SerialNumber string `json:"serialNumber"`
}

// Account is a LAPS capable account on a device.
type Account struct {
	ClientManagementID string `json:"clientManagementId"`
	GUID               string `json:"guid"`
	Username           string `json:"username"`
	UserSource         string `json:"userSource"`
}

type passwordResponse struct {
	Password string `json:"password"`
}

type HistoryEntry struct {
	Username   string     `json:"username"`
	UserSource string     `json:"userSource"`
	EventType  string     `json:"eventType"`
	EventTime  *time.Time `json:"eventTime"`
	ViewedBy   string     `json:"viewedBy,omitempty"`
}

// PasswordAuditEntry is one generation of a password and the views it saw.
type PasswordAuditEntry struct {
	Password       string       `json:"password"`
	DateLastSeen   *time.Time   `json:"dateLastSeen"`
	ExpirationTime *time.Time   `json:"expirationTime"`
	Audits         []AuditEvent `json:"audits"`
}

type AuditEvent struct {
	DateSeen time.Time `json:"dateSeen"`
	ViewedBy string    `json:"viewedBy"`
}

type PendingRotation struct {
	User        LapsUser  `json:"lapsUser"`
	CreatedDate time.Time `json:"createdDate"`
}

type LapsUser struct {
	ClientManagementID string `json:"clientManagementId"`
	GUID               string `json:"guid"`
	Username           string `json:"username"`
	UserSource         string `json:"userSource"`
}

type Settings struct {
	AutoDeployEnabled        bool `json:"autoDeployEnabled"`
	PasswordRotationTime     int  `json:"passwordRotationTime"`
	AutoRotateEnabled        bool `json:"autoRotateEnabled"`
	AutoRotateExpirationTime int  `json:"autoRotateExpirationTime"`
}

// SettingsUpdate carries a partial settings change; nil fields are left as is.
type SettingsUpdate struct {
	AutoDeployEnabled        *bool `json:"autoDeployEnabled,omitempty"`
	AutoRotateEnabled        *bool `json:"autoRotateEnabled,omitempty"`
	PasswordRotationTime     *int  `json:"passwordRotationTime,omitempty"`
	AutoRotateExpirationTime *int  `json:"autoRotateExpirationTime,omitempty"`
}

// Empty reports whether the update changes nothing.
func (u SettingsUpdate) Empty() bool {
	return u.AutoDeployEnabled == nil && u.AutoRotateEnabled == nil &&
		u.PasswordRotationTime == nil && u.AutoRotateExpirationTime == nil
}

type APIIntegration struct {
	DisplayName string `json:"displayName"`
	ClientID    string `json:"clientId"`
}

type setPasswordRequest struct {
	LapsUserPasswordList []passwordListItem `json:"lapsUserPasswordList"`
}

type passwordListItem struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
