// Package pixel implements a color and image library suitable for TFT LCD panels.
//
// This module provides the color models ST77xx controllers accept on the wire, compatible with Go's
// native [color.Color] and [image.Image] / [draw.Image] interfaces.
package pixel
