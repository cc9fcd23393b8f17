package checker

import (
	"regexp"
	"strings"

	"github.com/hostsentry/hostsentry/internal/vulnapi"
)

// Identity part tags, following CPE convention.
const (
	PartOS          = "o"
	PartApplication = "a"
)

// UnknownField is the sentinel for identity fields no pattern could fill.
// Fields are never left empty so downstream consumers never branch on
// missing keys.
const UnknownField = "unknown"

// SystemIdentity is the structured inference result for one banner.
type SystemIdentity struct {
	OperatingSystem vulnapi.Package   `json:"operating_system"`
	Software        []vulnapi.Package `json:"software"`
}

// osSignature pairs a product keyword with its vendor and a keyword-anchored
// version pattern.
type osSignature struct {
	keyword string
	vendor  string
	version *regexp.Regexp
}

func newOSSignature(keyword, vendor string) osSignature {
	return osSignature{
		keyword: keyword,
		vendor:  vendor,
		version: regexp.MustCompile(`(?i)` + keyword + `[-\s]?([\d.]+)`),
	}
}

// osSignatures is evaluated in order; the first matching entry wins and no
// further entries are checked. Order is part of the contract.
var osSignatures = []osSignature{
	newOSSignature("ubuntu", "canonical"),
	newOSSignature("debian", "debian"),
	newOSSignature("centos", "centos"),
	newOSSignature("enterprise_linux", "redhat"),
	newOSSignature("fedora", "fedora"),
	newOSSignature("alpine_linux", "alpine"),
	newOSSignature("amazon_linux", "amazon"),
}

// sshBannerPattern matches the canonical SSH identification string
// SSH-<protoversion>-<software>, e.g. "SSH-2.0-OpenSSH_9.6".
var sshBannerPattern = regexp.MustCompile(`SSH-[\d.]+-(\S+)`)

// InferIdentity parses a raw banner into a SystemIdentity. Pure function:
// no I/O, deterministic, identical input yields identical output.
func InferIdentity(banner string) SystemIdentity {
	identity := SystemIdentity{
		OperatingSystem: vulnapi.Package{
			Part:    PartOS,
			Vendor:  UnknownField,
			Product: UnknownField,
			Version: UnknownField,
		},
		Software: []vulnapi.Package{},
	}

	lower := strings.ToLower(banner)
	for _, sig := range osSignatures {
		if !strings.Contains(lower, sig.keyword) {
			continue
		}
		identity.OperatingSystem.Vendor = sig.vendor
		identity.OperatingSystem.Product = sig.keyword
		if m := sig.version.FindStringSubmatch(banner); m != nil {
			identity.OperatingSystem.Version = m[1]
		}
		break
	}

	if m := sshBannerPattern.FindStringSubmatch(banner); m != nil {
		product := m[1]
		version := UnknownField
		if i := strings.Index(product, "_"); i >= 0 {
			if v := product[i+1:]; v != "" {
				version = v
			}
			product = product[:i]
		}
		identity.Software = append(identity.Software, vulnapi.Package{
			Part: PartApplication,
			// The reference SSH implementation originates from OpenBSD;
			// the vendor field is fixed regardless of the parsed product.
			Vendor:  "openbsd",
			Product: strings.ToLower(product),
			Version: version,
		})
	}

	return identity
}
