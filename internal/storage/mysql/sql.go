package mysql

const insertBookingSQL = `
INSERT INTO bookings
  (id, guest_address, hotel_id, hotel_name, hotel_image, room_type,
   check_in, check_out, nights, guests, total_price, status, transaction_id, nft_token)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const updateBookingStatusSQL = `
UPDATE bookings
SET status = ?, updated_at = CURRENT_TIMESTAMP
WHERE id = ?
`

const listBookingsSQL = `
SELECT id, guest_address, hotel_id, hotel_name, hotel_image, room_type,
       check_in, check_out, nights, guests, total_price, status, transaction_id, nft_token
FROM bookings
WHERE guest_address = ?
ORDER BY created_at, id
`

const getBookingSQL = `
SELECT id, guest_address, hotel_id, hotel_name, hotel_image, room_type,
       check_in, check_out, nights, guests, total_price, status, transaction_id, nft_token
FROM bookings
WHERE id = ?
`
