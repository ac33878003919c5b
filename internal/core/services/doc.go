// Package services orchestrates the corpus pipeline: scraping issues,
// preparing them into flat records and extracted texts, cleaning those
// texts and joining the cleaned text back onto the flat records.
//
// Services talk to the outside world only through driven ports.
package services
