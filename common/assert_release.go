//go:build release

package common

const assertionsEnabled = false
