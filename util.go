package crcdriver

const strDefault = "default"
