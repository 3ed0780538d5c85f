package content

import (
	"encoding/json"
	"fmt"
	"net/mail"
	"strings"

	"github.com/brightline-events/siteadmin/internal/models"
	"github.com/brightline-events/siteadmin/internal/util"
	"gorm.io/datatypes"
)

// Address is one office location.
type Address struct {
	City    string `json:"city,omitempty"`
	Address string `json:"address,omitempty"`
}

// ContactInfo is the wire shape of the contact record.
type ContactInfo struct {
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Address   string    `json:"address"`
	Addresses []Address `json:"addresses"`
	Website   string    `json:"website"`
	Facebook  string    `json:"facebook"`
	Instagram string    `json:"instagram"`
	Linkedin  string    `json:"linkedin"`
	Twitter   string    `json:"twitter"`
	Youtube   string    `json:"youtube"`
	Whatsapp  string    `json:"whatsapp"`
}

// EmptyContactInfo is served when no database is configured.
func EmptyContactInfo() ContactInfo {
	return ContactInfo{Addresses: []Address{}}
}

// ContactInfoFromModel converts a stored record, upgrading legacy address formats.
func ContactInfoFromModel(info *models.CompanyInfo) ContactInfo {
	return ContactInfo{
		Phone:     info.Phone,
		Email:     info.Email,
		Address:   info.Address,
		Addresses: ParseAddresses(info.Addresses, info.Address),
		Website:   info.Website,
		Facebook:  info.Facebook,
		Instagram: info.Instagram,
		Linkedin:  info.Linkedin,
		Twitter:   info.Twitter,
		Youtube:   info.Youtube,
		Whatsapp:  info.Whatsapp,
	}
}

// ParseAddresses decodes the addresses column. Older rows store a plain string array,
// and rows predating the column only have the single legacy address line.
func ParseAddresses(raw datatypes.JSON, legacy string) []Address {
	out := []Address{}
	if len(raw) == 0 || string(raw) == "null" {
		if strings.TrimSpace(legacy) != "" {
			out = append(out, Address{Address: legacy})
		}
		return out
	}
	var objects []Address
	if err := json.Unmarshal(raw, &objects); err == nil {
		return append(out, objects...)
	}
	var lines []string
	if err := json.Unmarshal(raw, &lines); err == nil {
		for _, line := range lines {
			out = append(out, Address{Address: line})
		}
	}
	return out
}

// ContactInfoInput is the admin update payload. Absent fields are cleared.
type ContactInfoInput struct {
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Address   string    `json:"address"`
	Addresses []Address `json:"addresses"`
	Website   string    `json:"website"`
	Facebook  string    `json:"facebook"`
	Instagram string    `json:"instagram"`
	Linkedin  string    `json:"linkedin"`
	Twitter   string    `json:"twitter"`
	Youtube   string    `json:"youtube"`
	Whatsapp  string    `json:"whatsapp"`
}

// Fields validates the input and returns the normalized column updates.
func (in ContactInfoInput) Fields() (map[string]any, error) {
	email := strings.TrimSpace(in.Email)
	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return nil, fmt.Errorf("invalid email address")
		}
	}
	links := map[string]string{
		"website":   in.Website,
		"facebook":  in.Facebook,
		"instagram": in.Instagram,
		"linkedin":  in.Linkedin,
		"twitter":   in.Twitter,
		"youtube":   in.Youtube,
	}
	fields := map[string]any{
		"phone":    strings.TrimSpace(in.Phone),
		"email":    email,
		"address":  strings.TrimSpace(in.Address),
		"whatsapp": strings.TrimSpace(in.Whatsapp),
	}
	for column, value := range links {
		if !util.IsWebAddress(value) {
			return nil, fmt.Errorf("invalid URL format for %s", column)
		}
		fields[column] = util.NormalizeURL(value)
	}

	var kept []Address
	for _, addr := range in.Addresses {
		city := strings.TrimSpace(addr.City)
		line := strings.TrimSpace(addr.Address)
		if city == "" && line == "" {
			continue
		}
		kept = append(kept, Address{City: city, Address: line})
	}
	if len(kept) == 0 {
		fields["addresses"] = nil
	} else {
		encoded, err := json.Marshal(kept)
		if err != nil {
			return nil, fmt.Errorf("encode addresses: %w", err)
		}
		fields["addresses"] = datatypes.JSON(encoded)
	}
	return fields, nil
}
