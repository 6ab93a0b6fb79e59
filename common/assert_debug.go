//go:build !release

package common

const assertionsEnabled = true
