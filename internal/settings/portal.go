package settings

import (
	"context"
	"fmt"

	godbus "github.com/godbus/dbus/v5"
)

const (
	portalName  = "org.freedesktop.portal.Desktop"
	portalPath  = "/org/freedesktop/portal/desktop"
	portalIface = "org.freedesktop.portal.Settings"
)

// Portal reads the theme from the XDG desktop portal over the session bus.
// Useful inside sandboxes where gsettings cannot reach dconf.
type Portal struct {
	Schema string
	Key    string
	obj    godbus.BusObject
}

// NewPortal connects to the session bus.
func NewPortal() (*Portal, error) {
	conn, err := godbus.SessionBus()
	if err != nil {
		return nil, fmt.Errorf("connect session bus: %w", err)
	}
	return NewPortalFromObject(conn.Object(portalName, portalPath)), nil
}

// NewPortalFromObject wraps an existing portal object.
func NewPortalFromObject(obj godbus.BusObject) *Portal {
	return &Portal{Schema: InterfaceSchema, Key: GTKThemeKey, obj: obj}
}

func (p *Portal) ThemeName(ctx context.Context) (string, error) {
	var value godbus.Variant
	err := p.obj.CallWithContext(ctx, portalIface+".Read", 0, p.Schema, p.Key).Store(&value)
	if err != nil {
		return "", fmt.Errorf("portal read %s %s: %w", p.Schema, p.Key, err)
	}
	name, err := variantString(value)
	if err != nil {
		return "", fmt.Errorf("portal read %s %s: %w", p.Schema, p.Key, err)
	}
	name = NormalizeThemeName(name)
	if name == "" {
		return "", ErrNoTheme
	}
	return name, nil
}

// variantString unwraps the value returned by Settings.Read. Older portal
// versions wrap it in a second variant.
func variantString(v godbus.Variant) (string, error) {
	for {
		switch val := v.Value().(type) {
		case godbus.Variant:
			v = val
		case string:
			return val, nil
		default:
			return "", fmt.Errorf("unexpected value type %s", v.Signature())
		}
	}
}
