//go:build !qptrie_debug

package qptrie

const debug = false
