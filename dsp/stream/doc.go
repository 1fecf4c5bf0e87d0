// Package stream defines the token carried on every sample stream of the
// filter bank and the stereo word layout.
//
// A stream moves one [Token] per cycle. The consumer raises ready
// independently each cycle; a token is transferred on a cycle where it
// is valid and the consumer is ready. A producer must keep an offered,
// unaccepted token unchanged until it is accepted. [Checker] verifies
// that rule for one stream.
//
// Stereo samples travel packed in one 32-bit word: channel 0 (left) in
// the low half, channel 1 (right) in the high half.
package stream
